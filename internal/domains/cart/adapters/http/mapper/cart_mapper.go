// Package mapper translates between the cart HTTP payloads and the domain
// model.
package mapper

import (
	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	catalogdomain "github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/shared/money"
)

// Money is the HTTP representation of an amount/currency pair.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image is the HTTP representation of a product image.
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

// ProductRef is the slim product reference on a cart line.
type ProductRef struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage *Image `json:"featuredImage,omitempty"`
}

// Merchandise is the purchased variant on a cart line.
type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
	Product         ProductRef       `json:"product"`
}

// Line is the HTTP representation of a cart line.
type Line struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        Money       `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// Cost is the cart-level cost breakdown.
type Cost struct {
	SubtotalAmount Money  `json:"subtotalAmount"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalTaxAmount *Money `json:"totalTaxAmount,omitempty"`
}

// Cart is the HTTP representation of a cart snapshot.
type Cart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          Cost   `json:"cost"`
	Lines         []Line `json:"lines"`
}

// LineItem is an inbound add/create line.
type LineItem struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// LineUpdateItem is an inbound quantity rewrite.
type LineUpdateItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CreateCartRequest seeds a new cart; lines are optional.
type CreateCartRequest struct {
	Lines []LineItem `json:"lines"`
}

// AddLinesRequest appends lines to an existing cart.
type AddLinesRequest struct {
	CartID string     `json:"cartId"`
	Lines  []LineItem `json:"lines"`
}

// UpdateLinesRequest rewrites quantities on existing lines.
type UpdateLinesRequest struct {
	CartID string           `json:"cartId"`
	Lines  []LineUpdateItem `json:"lines"`
}

// RemoveLinesRequest deletes lines by ID.
type RemoveLinesRequest struct {
	CartID  string   `json:"cartId"`
	LineIDs []string `json:"lineIds"`
}

// ToLineInputs maps inbound line items into domain inputs.
func ToLineInputs(items []LineItem) []domain.LineInput {
	inputs := make([]domain.LineInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, domain.LineInput{MerchandiseID: item.MerchandiseID, Quantity: item.Quantity})
	}
	return inputs
}

// ToLineUpdates maps inbound update items into domain updates.
func ToLineUpdates(items []LineUpdateItem) []domain.LineUpdate {
	updates := make([]domain.LineUpdate, 0, len(items))
	for _, item := range items {
		updates = append(updates, domain.LineUpdate{LineID: item.ID, Quantity: item.Quantity})
	}
	return updates
}

// FromCart maps the domain snapshot into its HTTP representation.
func FromCart(cart *domain.Cart) *Cart {
	if cart == nil {
		return nil
	}
	lines := make([]Line, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, fromLine(line))
	}
	return &Cart{
		ID:            cart.ID,
		CheckoutURL:   cart.CheckoutURL,
		TotalQuantity: cart.TotalQuantity,
		Cost: Cost{
			SubtotalAmount: fromMoney(cart.Cost.Subtotal),
			TotalAmount:    fromMoney(cart.Cost.Total),
			TotalTaxAmount: fromMoneyPtr(cart.Cost.Tax),
		},
		Lines: lines,
	}
}

func fromLine(line domain.Line) Line {
	options := make([]SelectedOption, 0, len(line.Merchandise.SelectedOptions))
	for _, option := range line.Merchandise.SelectedOptions {
		options = append(options, SelectedOption{Name: option.Name, Value: option.Value})
	}
	return Line{
		ID:       line.ID,
		Quantity: line.Quantity,
		Cost:     fromMoney(line.Cost),
		Merchandise: Merchandise{
			ID:              line.Merchandise.ID,
			Title:           line.Merchandise.Title,
			SelectedOptions: options,
			Product: ProductRef{
				ID:            line.Merchandise.Product.ID,
				Handle:        line.Merchandise.Product.Handle,
				Title:         line.Merchandise.Product.Title,
				FeaturedImage: fromImage(line.Merchandise.Product.FeaturedImage),
			},
		},
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

func fromImage(img *catalogdomain.Image) *Image {
	if img == nil {
		return nil
	}
	return &Image{URL: img.URL, AltText: img.AltText, Width: img.Width, Height: img.Height}
}
