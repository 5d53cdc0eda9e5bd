package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, found, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.False(t, found)

	expires := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second).UTC()
	handle := domain.Handle{CartID: "gid://commerce/Cart/abc", ExpiresAt: expires}
	require.NoError(t, store.Save(ctx, "session-1", handle))

	got, found, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, handle.CartID, got.CartID)
	require.True(t, handle.ExpiresAt.Equal(got.ExpiresAt))
}

func TestStoreSaveReplacesExistingPair(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := domain.Handle{CartID: "cart-old", ExpiresAt: time.Now().Add(time.Hour).UTC()}
	require.NoError(t, store.Save(ctx, "session-1", first))

	second := domain.Handle{CartID: "cart-new", ExpiresAt: time.Now().Add(2 * time.Hour).UTC()}
	require.NoError(t, store.Save(ctx, "session-1", second))

	got, found, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "cart-new", got.CartID)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "session-1", domain.Handle{
		CartID:    "cart-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.Clear(ctx, "session-1"))
	require.NoError(t, store.Clear(ctx, "session-1"))

	_, found, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStorePurgeExpired(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, "stale", domain.Handle{
		CartID:    "cart-stale",
		ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, store.Save(ctx, "fresh", domain.Handle{
		CartID:    "cart-fresh",
		ExpiresAt: now.Add(time.Hour),
	}))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	_, found, err := store.Load(ctx, "stale")
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = store.Load(ctx, "fresh")
	require.NoError(t, err)
	require.True(t, found)
}
