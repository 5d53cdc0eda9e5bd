// Package commerce implements the catalog gateway against the storefront
// GraphQL API.
package commerce

import (
	"context"
	"errors"

	commerceclient "github.com/emberline/storefront-api/internal/clients/graphql/commerce"
	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway translates catalog reads into GraphQL documents.
type Gateway struct {
	client *commerceclient.Client
}

// NewGateway wires the GraphQL client into a catalog gateway.
func NewGateway(client *commerceclient.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) ensureClient() error {
	if g == nil || g.client == nil {
		return errors.New("catalog gateway not configured")
	}
	return nil
}

// ListProducts fetches up to limit products.
func (g *Gateway) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		Products commerceclient.Edges[commerceclient.Product] `json:"products"`
	}
	if err := g.client.Do(ctx, commerceclient.QueryProducts, map[string]any{"limit": limit}, &payload); err != nil {
		return nil, err
	}
	nodes := payload.Products.Nodes()
	products := make([]domain.Product, 0, len(nodes))
	for _, node := range nodes {
		products = append(products, toProduct(node))
	}
	return products, nil
}

// GetProduct fetches one product; a null node maps to ErrNotFound.
func (g *Gateway) GetProduct(ctx context.Context, handle string) (*domain.Product, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		ProductByHandle *commerceclient.Product `json:"productByHandle"`
	}
	if err := g.client.Do(ctx, commerceclient.QueryProductByHandle, map[string]any{"handle": handle}, &payload); err != nil {
		return nil, err
	}
	if payload.ProductByHandle == nil {
		return nil, ports.ErrNotFound
	}
	product := toProduct(*payload.ProductByHandle)
	return &product, nil
}

// ListCollections fetches up to limit collections.
func (g *Gateway) ListCollections(ctx context.Context, limit int) ([]domain.Collection, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		Collections commerceclient.Edges[commerceclient.Collection] `json:"collections"`
	}
	if err := g.client.Do(ctx, commerceclient.QueryCollections, map[string]any{"limit": limit}, &payload); err != nil {
		return nil, err
	}
	nodes := payload.Collections.Nodes()
	collections := make([]domain.Collection, 0, len(nodes))
	for _, node := range nodes {
		collections = append(collections, toCollection(node))
	}
	return collections, nil
}

// GetCollection fetches one collection with a product page; a null node maps
// to ErrNotFound.
func (g *Gateway) GetCollection(ctx context.Context, handle string, limit int) (*domain.Collection, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	var payload struct {
		CollectionByHandle *commerceclient.Collection `json:"collectionByHandle"`
	}
	variables := map[string]any{"handle": handle, "limit": limit}
	if err := g.client.Do(ctx, commerceclient.QueryCollectionByHandle, variables, &payload); err != nil {
		return nil, err
	}
	if payload.CollectionByHandle == nil {
		return nil, ports.ErrNotFound
	}
	collection := toCollection(*payload.CollectionByHandle)
	return &collection, nil
}
