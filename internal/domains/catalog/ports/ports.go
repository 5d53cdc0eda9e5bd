// Package ports declares the catalog bounded context interfaces.
package ports

import (
	"context"
	"errors"

	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
)

// ErrNotFound signals the platform has no resource for the given handle.
var ErrNotFound = errors.New("catalog resource not found")

// Gateway reads catalog projections from the remote commerce platform.
// GetProduct and GetCollection return ErrNotFound for unknown handles.
type Gateway interface {
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, handle string) (*domain.Product, error)
	ListCollections(ctx context.Context, limit int) ([]domain.Collection, error)
	GetCollection(ctx context.Context, handle string, limit int) (*domain.Collection, error)
}

// Service is the application-facing catalog port.
type Service interface {
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, handle string) (*domain.Product, error)
	ListCollections(ctx context.Context, limit int) ([]domain.Collection, error)
	GetCollection(ctx context.Context, handle string, limit int) (*domain.Collection, error)
}

// Invalidator drops cached catalog reads for a resource tag. Implemented by
// the caching gateway decorator.
type Invalidator interface {
	Invalidate(tag string)
}
