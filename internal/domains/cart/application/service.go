// Package application is the cart action layer: every operation validates
// its inputs in full before the gateway is invoked, and every failure comes
// back through the error return — nothing panics.
package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

// Service composes validation with the commerce gateway.
type Service struct {
	gateway ports.Gateway
}

// NewService wires the cart service with its gateway.
func NewService(gateway ports.Gateway) *Service {
	return &Service{gateway: gateway}
}

var _ ports.Service = (*Service)(nil)

// CreateCart creates a cart, optionally seeded with lines. An empty line
// list is valid and yields a cart with total quantity zero.
func (s *Service) CreateCart(ctx context.Context, lines []domain.LineInput) (*domain.Cart, error) {
	var v violations
	validateLineInputs(&v, lines, false)
	if err := v.err(); err != nil {
		return nil, err
	}
	cart, err := s.gateway.CreateCart(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// GetCart loads the current snapshot. An unknown handle surfaces as
// ErrCartNotFound, distinct from transport failures.
func (s *Service) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if strings.TrimSpace(cartID) == "" {
		return nil, fmt.Errorf("%w: cartId: cart ID is required", ErrInvalidInput)
	}
	cart, err := s.gateway.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddLines appends lines to the cart. The batch validates as a whole; one
// bad line rejects everything with no network call.
func (s *Service) AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error) {
	var v violations
	validateCartID(&v, cartID)
	validateLineInputs(&v, lines, true)
	if err := v.err(); err != nil {
		return nil, err
	}
	cart, err := s.gateway.AddLines(ctx, cartID, lines)
	if err != nil {
		return nil, fmt.Errorf("add cart lines: %w", err)
	}
	return cart, nil
}

// UpdateLines rewrites quantities on existing lines, all-or-nothing.
func (s *Service) UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error) {
	var v violations
	validateCartID(&v, cartID)
	validateLineUpdates(&v, lines)
	if err := v.err(); err != nil {
		return nil, err
	}
	cart, err := s.gateway.UpdateLines(ctx, cartID, lines)
	if err != nil {
		return nil, fmt.Errorf("update cart lines: %w", err)
	}
	return cart, nil
}

// RemoveLines deletes lines by ID, all-or-nothing.
func (s *Service) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	var v violations
	validateCartID(&v, cartID)
	validateLineIDs(&v, lineIDs)
	if err := v.err(); err != nil {
		return nil, err
	}
	cart, err := s.gateway.RemoveLines(ctx, cartID, lineIDs)
	if err != nil {
		return nil, fmt.Errorf("remove cart lines: %w", err)
	}
	return cart, nil
}
