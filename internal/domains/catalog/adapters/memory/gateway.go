// Package memory provides a fixture-backed catalog gateway for development
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway serves catalog reads from in-memory fixtures.
type Gateway struct {
	mu          sync.RWMutex
	products    []domain.Product
	collections []domain.Collection

	// Err, when set, is returned by every call. Used to exercise failure paths.
	Err error

	// Calls counts gateway invocations, which lets cache tests assert on
	// collapsed fetches.
	Calls int
}

// NewGateway constructs an empty gateway.
func NewGateway() *Gateway {
	return &Gateway{}
}

// SeedProducts replaces the product fixtures.
func (g *Gateway) SeedProducts(products ...domain.Product) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.products = append([]domain.Product{}, products...)
}

// SeedCollections replaces the collection fixtures.
func (g *Gateway) SeedCollections(collections ...domain.Collection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.collections = append([]domain.Collection{}, collections...)
}

func (g *Gateway) ListProducts(_ context.Context, limit int) ([]domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	if limit > len(g.products) {
		limit = len(g.products)
	}
	return append([]domain.Product{}, g.products[:limit]...), nil
}

func (g *Gateway) GetProduct(_ context.Context, handle string) (*domain.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	for _, p := range g.products {
		if p.Handle == handle {
			copy := p
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (g *Gateway) ListCollections(_ context.Context, limit int) ([]domain.Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	if limit > len(g.collections) {
		limit = len(g.collections)
	}
	return append([]domain.Collection{}, g.collections[:limit]...), nil
}

func (g *Gateway) GetCollection(_ context.Context, handle string, limit int) (*domain.Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls++
	if g.Err != nil {
		return nil, g.Err
	}
	for _, c := range g.collections {
		if c.Handle == handle {
			copy := c
			if limit < len(copy.Products) {
				copy.Products = append([]domain.Product{}, copy.Products[:limit]...)
			}
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}
