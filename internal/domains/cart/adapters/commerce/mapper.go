package commerce

import (
	commerceclient "github.com/emberline/storefront-api/internal/clients/graphql/commerce"
	cartdomain "github.com/emberline/storefront-api/internal/domains/cart/domain"
	catalogdomain "github.com/emberline/storefront-api/internal/domains/catalog/domain"
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

func toImage(img *commerceclient.Image) *catalogdomain.Image {
	if img == nil {
		return nil
	}
	return &catalogdomain.Image{
		ID:      img.ID,
		URL:     img.URL,
		AltText: img.AltText,
		Width:   img.Width,
		Height:  img.Height,
	}
}

func toSelectedOptions(options []commerceclient.SelectedOption) []catalogdomain.SelectedOption {
	converted := make([]catalogdomain.SelectedOption, 0, len(options))
	for _, option := range options {
		converted = append(converted, catalogdomain.SelectedOption{Name: option.Name, Value: option.Value})
	}
	return converted
}

func toLine(line commerceclient.CartLine) cartdomain.Line {
	return cartdomain.Line{
		ID:       line.ID,
		Quantity: line.Quantity,
		Cost:     toMoney(line.Cost.TotalAmount),
		Merchandise: cartdomain.Merchandise{
			ID:              line.Merchandise.ID,
			Title:           line.Merchandise.Title,
			SelectedOptions: toSelectedOptions(line.Merchandise.SelectedOptions),
			Product: cartdomain.ProductRef{
				ID:            line.Merchandise.Product.ID,
				Handle:        line.Merchandise.Product.Handle,
				Title:         line.Merchandise.Product.Title,
				FeaturedImage: toImage(line.Merchandise.Product.FeaturedImage),
			},
		},
	}
}

func toCart(cart commerceclient.Cart) *cartdomain.Cart {
	nodes := cart.Lines.Nodes()
	lines := make([]cartdomain.Line, 0, len(nodes))
	for _, node := range nodes {
		lines = append(lines, toLine(node))
	}
	return &cartdomain.Cart{
		ID:            cart.ID,
		CheckoutURL:   cart.CheckoutURL,
		TotalQuantity: cart.TotalQuantity,
		Cost: cartdomain.Cost{
			Subtotal: toMoney(cart.Cost.SubtotalAmount),
			Total:    toMoney(cart.Cost.TotalAmount),
			Tax:      toMoneyPtr(cart.Cost.TotalTaxAmount),
		},
		Lines: lines,
	}
}

func toLineInputs(lines []cartdomain.LineInput) []commerceclient.LineInput {
	converted := make([]commerceclient.LineInput, 0, len(lines))
	for _, line := range lines {
		converted = append(converted, commerceclient.LineInput{
			MerchandiseID: line.MerchandiseID,
			Quantity:      line.Quantity,
		})
	}
	return converted
}

func toLineUpdateInputs(lines []cartdomain.LineUpdate) []commerceclient.LineUpdateInput {
	converted := make([]commerceclient.LineUpdateInput, 0, len(lines))
	for _, line := range lines {
		converted = append(converted, commerceclient.LineUpdateInput{
			ID:       line.LineID,
			Quantity: line.Quantity,
		})
	}
	return converted
}
