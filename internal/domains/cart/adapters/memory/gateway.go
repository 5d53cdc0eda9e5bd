// Package memory provides in-memory cart adapters for development and tests:
// a fake commerce gateway with realistic cart semantics and a handle store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
	"github.com/emberline/storefront-api/internal/shared/money"
)

var _ ports.Gateway = (*Gateway)(nil)

// DefaultCurrency is used for unseeded merchandise prices.
const DefaultCurrency = "USD"

// Gateway emulates the remote cart service: every write returns the full
// recomputed snapshot, duplicate merchandise merges into the existing line
// (keeping its ID), and a removed-then-re-added line gets a fresh ID.
type Gateway struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart
	prices map[string]money.Money
	titles map[string]string
	seq    int

	// Failure injection, consumed by sync-store and service tests.
	FailCreate error
	FailGet    error
	FailAdd    error
	FailUpdate error
	FailRemove error

	// GetCalls counts reads so tests can assert on resynchronizing fetches.
	GetCalls int
}

// NewGateway constructs an empty fake.
func NewGateway() *Gateway {
	return &Gateway{
		carts:  map[string]*domain.Cart{},
		prices: map[string]money.Money{},
		titles: map[string]string{},
	}
}

// SeedVariant registers a merchandise price and title.
func (g *Gateway) SeedVariant(merchandiseID, title, amount string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[merchandiseID] = money.Money{Amount: amount, CurrencyCode: DefaultCurrency}
	g.titles[merchandiseID] = title
}

// SeedCart installs a cart under a fixed ID so contract tests can reference
// it without creating one first.
func (g *Gateway) SeedCart(cartID string, lines ...domain.LineInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	cart := &domain.Cart{
		ID:          cartID,
		CheckoutURL: "https://checkout.example/" + cartID,
	}
	g.carts[cartID] = cart
	g.appendLines(cart, lines)
	g.recompute(cart)
}

// DropCart forgets a cart so reads report not-found, as the platform does
// after checkout or expiry.
func (g *Gateway) DropCart(cartID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.carts, cartID)
}

func (g *Gateway) nextID(prefix string) string {
	g.seq++
	return fmt.Sprintf("gid://fake/%s/%d", prefix, g.seq)
}

func (g *Gateway) unitPrice(merchandiseID string) money.Money {
	if price, ok := g.prices[merchandiseID]; ok {
		return price
	}
	return money.Money{Amount: "10.00", CurrencyCode: DefaultCurrency}
}

// CreateCart creates a cart, optionally seeded with lines.
func (g *Gateway) CreateCart(_ context.Context, lines []domain.LineInput) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailCreate != nil {
		return nil, g.FailCreate
	}
	id := g.nextID("Cart")
	cart := &domain.Cart{
		ID:          id,
		CheckoutURL: "https://checkout.example/" + id,
	}
	g.carts[id] = cart
	g.appendLines(cart, lines)
	g.recompute(cart)
	return cart.Clone(), nil
}

// GetCart returns the snapshot or ports.ErrCartNotFound.
func (g *Gateway) GetCart(_ context.Context, cartID string) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.GetCalls++
	if g.FailGet != nil {
		return nil, g.FailGet
	}
	cart, ok := g.carts[cartID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	return cart.Clone(), nil
}

// AddLines appends lines, merging duplicate merchandise.
func (g *Gateway) AddLines(_ context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailAdd != nil {
		return nil, g.FailAdd
	}
	cart, ok := g.carts[cartID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	g.appendLines(cart, lines)
	g.recompute(cart)
	return cart.Clone(), nil
}

// UpdateLines rewrites quantities on existing lines.
func (g *Gateway) UpdateLines(_ context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailUpdate != nil {
		return nil, g.FailUpdate
	}
	cart, ok := g.carts[cartID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	for _, update := range lines {
		for i := range cart.Lines {
			if cart.Lines[i].ID == update.LineID {
				cart.Lines[i].Quantity = update.Quantity
				break
			}
		}
	}
	g.recompute(cart)
	return cart.Clone(), nil
}

// RemoveLines deletes lines by ID.
func (g *Gateway) RemoveLines(_ context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailRemove != nil {
		return nil, g.FailRemove
	}
	cart, ok := g.carts[cartID]
	if !ok {
		return nil, ports.ErrCartNotFound
	}
	for _, id := range lineIDs {
		kept := cart.Lines[:0]
		for _, line := range cart.Lines {
			if line.ID != id {
				kept = append(kept, line)
			}
		}
		cart.Lines = kept
	}
	g.recompute(cart)
	return cart.Clone(), nil
}

func (g *Gateway) appendLines(cart *domain.Cart, lines []domain.LineInput) {
	for _, input := range lines {
		merged := false
		for i := range cart.Lines {
			if cart.Lines[i].Merchandise.ID == input.MerchandiseID {
				cart.Lines[i].Quantity += input.Quantity
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		cart.Lines = append(cart.Lines, domain.Line{
			ID:       g.nextID("CartLine"),
			Quantity: input.Quantity,
			Merchandise: domain.Merchandise{
				ID:    input.MerchandiseID,
				Title: g.titles[input.MerchandiseID],
				Product: domain.ProductRef{
					ID:     input.MerchandiseID + "/product",
					Handle: "fake-product",
					Title:  g.titles[input.MerchandiseID],
				},
			},
		})
	}
}

func (g *Gateway) recompute(cart *domain.Cart) {
	subtotal := money.Zero(DefaultCurrency)
	total := 0
	for i := range cart.Lines {
		price := g.unitPrice(cart.Lines[i].Merchandise.ID)
		unit, err := price.Decimal()
		if err != nil {
			continue
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(cart.Lines[i].Quantity)))
		cart.Lines[i].Cost = money.Money{Amount: lineTotal.String(), CurrencyCode: price.CurrencyCode}
		if sum, err := money.Add(subtotal, cart.Lines[i].Cost); err == nil {
			subtotal = sum
		}
		total += cart.Lines[i].Quantity
	}
	cart.TotalQuantity = total
	cart.Cost = domain.Cost{Subtotal: subtotal, Total: subtotal}
}
