// Package application orchestrates catalog use cases over the gateway port.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

// DefaultLimit is applied when the caller passes a non-positive limit.
const DefaultLimit = 20

// MaxLimit bounds a single catalog page.
const MaxLimit = 250

// Service validates catalog requests and forwards them to the gateway.
type Service struct {
	gateway ports.Gateway
}

// NewService wires the catalog service with its gateway.
func NewService(gateway ports.Gateway) *Service {
	return &Service{gateway: gateway}
}

var _ ports.Service = (*Service)(nil)

// ListProducts returns up to limit products.
func (s *Service) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListProducts(ctx, limit)
}

// GetProduct loads a single product by handle.
func (s *Service) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, fmt.Errorf("%w: product handle is required", ErrInvalidInput)
	}
	return s.gateway.GetProduct(ctx, handle)
}

// ListCollections returns up to limit collections.
func (s *Service) ListCollections(ctx context.Context, limit int) ([]domain.Collection, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListCollections(ctx, limit)
}

// GetCollection loads a collection by handle with up to limit products.
func (s *Service) GetCollection(ctx context.Context, handle string, limit int) (*domain.Collection, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, fmt.Errorf("%w: collection handle is required", ErrInvalidInput)
	}
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	return s.gateway.GetCollection(ctx, handle, limit)
}

func normalizeLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}
	if limit > MaxLimit {
		return MaxLimit, nil
	}
	return limit, nil
}
