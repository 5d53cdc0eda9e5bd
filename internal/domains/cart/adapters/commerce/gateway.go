// Package commerce implements the cart gateway against the storefront
// GraphQL API. Every mutation selects the full resulting cart snapshot.
package commerce

import (
	"context"
	"errors"

	commerceclient "github.com/emberline/storefront-api/internal/clients/graphql/commerce"
	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway translates cart operations into GraphQL documents.
type Gateway struct {
	client *commerceclient.Client
}

// NewGateway wires the GraphQL client into a cart gateway.
func NewGateway(client *commerceclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("cart gateway not configured")
	}
	return nil
}

// CreateCart creates a cart, optionally seeded with lines.
func (g *Gateway) CreateCart(ctx context.Context, lines []domain.LineInput) (*domain.Cart, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		CartCreate struct {
			Cart *commerceclient.Cart `json:"cart"`
		} `json:"cartCreate"`
	}
	variables := map[string]any{"lines": toLineInputs(lines)}
	if err := g.client.Do(ctx, commerceclient.MutationCartCreate, variables, &payload); err != nil {
		return nil, err
	}
	if payload.CartCreate.Cart == nil {
		return nil, errors.New("cart create returned no cart")
	}
	return toCart(*payload.CartCreate.Cart), nil
}

// GetCart fetches the snapshot; a null cart maps to ErrCartNotFound.
func (g *Gateway) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		Cart *commerceclient.Cart `json:"cart"`
	}
	if err := g.client.Do(ctx, commerceclient.QueryCart, map[string]any{"cartId": cartID}, &payload); err != nil {
		return nil, err
	}
	if payload.Cart == nil {
		return nil, ports.ErrCartNotFound
	}
	return toCart(*payload.Cart), nil
}

// AddLines appends lines to an existing cart.
func (g *Gateway) AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		CartLinesAdd struct {
			Cart *commerceclient.Cart `json:"cart"`
		} `json:"cartLinesAdd"`
	}
	variables := map[string]any{"cartId": cartID, "lines": toLineInputs(lines)}
	if err := g.client.Do(ctx, commerceclient.MutationCartLinesAdd, variables, &payload); err != nil {
		return nil, err
	}
	if payload.CartLinesAdd.Cart == nil {
		return nil, ports.ErrCartNotFound
	}
	return toCart(*payload.CartLinesAdd.Cart), nil
}

// UpdateLines rewrites quantities on existing lines.
func (g *Gateway) UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		CartLinesUpdate struct {
			Cart *commerceclient.Cart `json:"cart"`
		} `json:"cartLinesUpdate"`
	}
	variables := map[string]any{"cartId": cartID, "lines": toLineUpdateInputs(lines)}
	if err := g.client.Do(ctx, commerceclient.MutationCartLinesUpdate, variables, &payload); err != nil {
		return nil, err
	}
	if payload.CartLinesUpdate.Cart == nil {
		return nil, ports.ErrCartNotFound
	}
	return toCart(*payload.CartLinesUpdate.Cart), nil
}

// RemoveLines deletes lines by ID.
func (g *Gateway) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		CartLinesRemove struct {
			Cart *commerceclient.Cart `json:"cart"`
		} `json:"cartLinesRemove"`
	}
	variables := map[string]any{"cartId": cartID, "lineIds": lineIDs}
	if err := g.client.Do(ctx, commerceclient.MutationCartLinesRemove, variables, &payload); err != nil {
		return nil, err
	}
	if payload.CartLinesRemove.Cart == nil {
		return nil, ports.ErrCartNotFound
	}
	return toCart(*payload.CartLinesRemove.Cart), nil
}
