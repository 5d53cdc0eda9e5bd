package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront-api/internal/domains/catalog/adapters/memory"
	"github.com/emberline/storefront-api/internal/domains/catalog/domain"
	"github.com/emberline/storefront-api/internal/domains/catalog/ports"
)

func seededInner() *memory.Gateway {
	inner := memory.NewGateway()
	inner.SeedProducts(
		domain.Product{ID: "p1", Handle: "candle", Title: "Candle"},
		domain.Product{ID: "p2", Handle: "melt", Title: "Melt"},
	)
	inner.SeedCollections(domain.Collection{ID: "c1", Handle: "bestsellers", Title: "Bestsellers"})
	return inner
}

func TestCachedReadHitsUpstreamOnce(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		products, err := gateway.ListProducts(ctx, 10)
		require.NoError(t, err)
		require.Len(t, products, 2)
	}
	require.Equal(t, 1, inner.Calls)
}

func TestDistinctLimitsAreDistinctEntries(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	_, err := gateway.ListProducts(ctx, 1)
	require.NoError(t, err)
	_, err = gateway.ListProducts(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, inner.Calls)
}

func TestInvalidateTagDropsGroupedEntries(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	_, err := gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	_, err = gateway.GetProduct(ctx, "candle")
	require.NoError(t, err)
	_, err = gateway.ListCollections(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 3, inner.Calls)

	gateway.Invalidate(TagProducts)

	// Product reads refetch; the collection entry is untouched.
	_, err = gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	_, err = gateway.GetProduct(ctx, "candle")
	require.NoError(t, err)
	_, err = gateway.ListCollections(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 5, inner.Calls)
}

func TestInvalidatePerResourceTag(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	_, err := gateway.GetProduct(ctx, "candle")
	require.NoError(t, err)
	_, err = gateway.GetProduct(ctx, "melt")
	require.NoError(t, err)

	gateway.Invalidate(ProductTag("candle"))

	_, err = gateway.GetProduct(ctx, "candle")
	require.NoError(t, err)
	_, err = gateway.GetProduct(ctx, "melt")
	require.NoError(t, err)
	require.Equal(t, 3, inner.Calls)
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	inner := seededInner()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gateway := NewGateway(inner,
		WithTTL(time.Minute),
		WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	_, err = gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, inner.Calls)

	now = now.Add(2 * time.Minute)
	_, err = gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 2, inner.Calls)
}

func TestErrorsAreNeverCached(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	inner.Err = errors.New("boom")
	_, err := gateway.ListProducts(ctx, 10)
	require.Error(t, err)

	inner.Err = nil
	products, err := gateway.ListProducts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, 2, inner.Calls)
}

func TestNotFoundIsNeverCached(t *testing.T) {
	inner := seededInner()
	gateway := NewGateway(inner)
	ctx := context.Background()

	_, err := gateway.GetProduct(ctx, "future-product")
	require.ErrorIs(t, err, ports.ErrNotFound)

	inner.SeedProducts(domain.Product{ID: "p3", Handle: "future-product", Title: "Future"})
	product, err := gateway.GetProduct(ctx, "future-product")
	require.NoError(t, err)
	require.Equal(t, "Future", product.Title)
}
