package commerce

import (
	commerceclient "github.com/emberline/storefront-api/internal/clients/graphql/commerce"
	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/shared/money"
)

func toMoney(m commerceclient.MoneyV2) money.Money {
	return money.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func toMoneyPtr(m *commerceclient.MoneyV2) *money.Money {
	if m == nil {
		return nil
	}
	converted := toMoney(*m)
	return &converted
}

func toImage(img commerceclient.Image) domain.Image {
	return domain.Image{
		ID:      img.ID,
		URL:     img.URL,
		AltText: img.AltText,
		Width:   img.Width,
		Height:  img.Height,
	}
}

func toImagePtr(img *commerceclient.Image) *domain.Image {
	if img == nil {
		return nil
	}
	converted := toImage(*img)
	return &converted
}

func toSelectedOptions(opts []commerceclient.SelectedOption) []domain.SelectedOption {
	if len(opts) == 0 {
		return nil
	}
	converted := make([]domain.SelectedOption, 0, len(opts))
	for _, opt := range opts {
		converted = append(converted, domain.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return converted
}

func toVariant(v commerceclient.Variant) domain.Variant {
	return domain.Variant{
		ID:                v.ID,
		Title:             v.Title,
		AvailableForSale:  v.AvailableForSale,
		QuantityAvailable: v.QuantityAvailable,
		Price:             toMoney(v.Price),
		CompareAtPrice:    toMoneyPtr(v.CompareAtPrice),
		SelectedOptions:   toSelectedOptions(v.SelectedOptions),
		Image:             toImagePtr(v.Image),
	}
}

func toProduct(p commerceclient.Product) domain.Product {
	images := make([]domain.Image, 0, len(p.Images.Edges))
	for _, img := range p.Images.Nodes() {
		images = append(images, toImage(img))
	}
	variants := make([]domain.Variant, 0, len(p.Variants.Edges))
	for _, v := range p.Variants.Nodes() {
		variants = append(variants, toVariant(v))
	}
	return domain.Product{
		ID:               p.ID,
		Handle:           p.Handle,
		Title:            p.Title,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		AvailableForSale: p.AvailableForSale,
		Tags:             append([]string{}, p.Tags...),
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		PriceRange: domain.PriceRange{
			MinVariantPrice: toMoney(p.PriceRange.MinVariantPrice),
			MaxVariantPrice: toMoney(p.PriceRange.MaxVariantPrice),
		},
		Images:   images,
		Variants: variants,
	}
}

func toCollection(c commerceclient.Collection) domain.Collection {
	products := make([]domain.Product, 0, len(c.Products.Edges))
	for _, p := range c.Products.Nodes() {
		products = append(products, toProduct(p))
	}
	return domain.Collection{
		ID:              c.ID,
		Handle:          c.Handle,
		Title:           c.Title,
		Description:     c.Description,
		DescriptionHTML: c.DescriptionHTML,
		Image:           toImagePtr(c.Image),
		Products:        products,
	}
}
