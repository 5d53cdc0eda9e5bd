// Package mapper translates catalog domain projections into HTTP payloads.
package mapper

import (
	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/shared/money"
)

// Money is the HTTP representation of an amount/currency pair.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image is the HTTP representation of a catalog image.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SelectedOption is one variant option pair.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is the HTTP representation of a purchasable configuration.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable,omitempty"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice,omitempty"`
	OnSale            bool             `json:"onSale"`
	SelectedOptions   []SelectedOption `json:"selectedOptions,omitempty"`
	Image             *Image           `json:"image,omitempty"`
}

// PriceRange spans the cheapest and most expensive variant.
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID               string     `json:"id"`
	Handle           string     `json:"handle"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	DescriptionHTML  string     `json:"descriptionHtml,omitempty"`
	AvailableForSale bool       `json:"availableForSale"`
	Tags             []string   `json:"tags,omitempty"`
	Vendor           string     `json:"vendor,omitempty"`
	ProductType      string     `json:"productType,omitempty"`
	PriceRange       PriceRange `json:"priceRange"`
	Images           []Image    `json:"images"`
	Variants         []Variant  `json:"variants"`
}

// Collection is the HTTP representation of a catalog collection.
type Collection struct {
	ID              string    `json:"id"`
	Handle          string    `json:"handle"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DescriptionHTML string    `json:"descriptionHtml,omitempty"`
	Image           *Image    `json:"image,omitempty"`
	Products        []Product `json:"products,omitempty"`
}

// FromProduct maps one product.
func FromProduct(product *domain.Product) *Product {
	if product == nil {
		return nil
	}
	mapped := fromProduct(*product)
	return &mapped
}

// FromProductList maps a product page.
func FromProductList(products []domain.Product) []Product {
	mapped := make([]Product, 0, len(products))
	for _, product := range products {
		mapped = append(mapped, fromProduct(product))
	}
	return mapped
}

// FromCollection maps one collection with its product page.
func FromCollection(collection *domain.Collection) *Collection {
	if collection == nil {
		return nil
	}
	mapped := fromCollection(*collection)
	return &mapped
}

// FromCollectionList maps a collection page.
func FromCollectionList(collections []domain.Collection) []Collection {
	mapped := make([]Collection, 0, len(collections))
	for _, collection := range collections {
		mapped = append(mapped, fromCollection(collection))
	}
	return mapped
}

func fromProduct(product domain.Product) Product {
	images := make([]Image, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, fromImage(img))
	}
	variants := make([]Variant, 0, len(product.Variants))
	for _, variant := range product.Variants {
		variants = append(variants, fromVariant(variant))
	}
	return Product{
		ID:               product.ID,
		Handle:           product.Handle,
		Title:            product.Title,
		Description:      product.Description,
		DescriptionHTML:  product.DescriptionHTML,
		AvailableForSale: product.AvailableForSale,
		Tags:             product.Tags,
		Vendor:           product.Vendor,
		ProductType:      product.ProductType,
		PriceRange: PriceRange{
			MinVariantPrice: fromMoney(product.PriceRange.MinVariantPrice),
			MaxVariantPrice: fromMoney(product.PriceRange.MaxVariantPrice),
		},
		Images:   images,
		Variants: variants,
	}
}

func fromCollection(collection domain.Collection) Collection {
	return Collection{
		ID:              collection.ID,
		Handle:          collection.Handle,
		Title:           collection.Title,
		Description:     collection.Description,
		DescriptionHTML: collection.DescriptionHTML,
		Image:           fromImagePtr(collection.Image),
		Products:        FromProductList(collection.Products),
	}
}

func fromVariant(variant domain.Variant) Variant {
	options := make([]SelectedOption, 0, len(variant.SelectedOptions))
	for _, option := range variant.SelectedOptions {
		options = append(options, SelectedOption{Name: option.Name, Value: option.Value})
	}
	return Variant{
		ID:                variant.ID,
		Title:             variant.Title,
		AvailableForSale:  variant.AvailableForSale,
		QuantityAvailable: variant.QuantityAvailable,
		Price:             fromMoney(variant.Price),
		CompareAtPrice:    fromMoneyPtr(variant.CompareAtPrice),
		OnSale:            variant.OnSale(),
		SelectedOptions:   options,
		Image:             fromImagePtr(variant.Image),
	}
}

func fromMoney(m money.Money) Money {
	return Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func fromMoneyPtr(m *money.Money) *Money {
	if m == nil {
		return nil
	}
	converted := fromMoney(*m)
	return &converted
}

func fromImage(img domain.Image) Image {
	return Image{URL: img.URL, AltText: img.AltText, Width: img.Width, Height: img.Height}
}

func fromImagePtr(img *domain.Image) *Image {
	if img == nil {
		return nil
	}
	converted := fromImage(*img)
	return &converted
}
