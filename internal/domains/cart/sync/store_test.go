package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront-api/internal/domains/cart/adapters/memory"
	"github.com/emberline/storefront-api/internal/domains/cart/application"
	"github.com/emberline/storefront-api/internal/domains/cart/domain"
)

// manualDispatch queues completions so tests can observe the optimistic
// phase before the network call settles.
type manualDispatch struct {
	queue []func()
}

func (d *manualDispatch) dispatch(f func()) {
	d.queue = append(d.queue, f)
}

func (d *manualDispatch) runAll() {
	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		next()
	}
}

func synchronous(f func()) { f() }

type fixture struct {
	gateway  *memory.Gateway
	handles  *memory.HandleStore
	store    *Store
	dispatch *manualDispatch
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	gateway := memory.NewGateway()
	gateway.SeedVariant("gid://fake/Variant/1", "Emberline Candle", "24.00")
	gateway.SeedVariant("gid://fake/Variant/2", "Wax Melt Trio", "12.50")
	handles := memory.NewHandleStore()
	dispatch := &manualDispatch{}
	all := append([]Option{WithDispatch(dispatch.dispatch)}, opts...)
	store := New(application.NewService(gateway), handles, "session-1", all...)
	return &fixture{gateway: gateway, handles: handles, store: store, dispatch: dispatch}
}

func (f *fixture) addAndSettle(t *testing.T, merchandiseID string, quantity int) {
	t.Helper()
	require.NoError(t, f.store.AddItem(context.Background(), merchandiseID, quantity))
	f.dispatch.runAll()
}

func TestInitializeWithoutStoredHandle(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.store.Initialize(context.Background()))

	snap := f.store.Snapshot()
	require.Nil(t, snap.Cart)
	require.False(t, snap.Loading)
	require.False(t, snap.DrawerOpen)
}

func TestInitializeExpiredHandleClearsPairWithoutFetching(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.handles.Save(ctx, "session-1", domain.Handle{
		CartID:    "gid://fake/Cart/stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	require.NoError(t, f.store.Initialize(ctx))

	require.Zero(t, f.gateway.GetCalls)
	_, found, err := f.handles.Load(ctx, "session-1")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, f.store.Snapshot().Cart)
}

func TestInitializeValidHandleFetchesCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addAndSettle(t, "gid://fake/Variant/1", 2)
	cartID := f.store.Snapshot().Cart.ID

	// A fresh store for the same session must recover the cart.
	restarted := New(application.NewService(f.gateway), f.handles, "session-1",
		WithDispatch(synchronous))
	require.NoError(t, restarted.Initialize(ctx))

	snap := restarted.Snapshot()
	require.NotNil(t, snap.Cart)
	require.Equal(t, cartID, snap.Cart.ID)
	require.Equal(t, 2, snap.Cart.TotalQuantity)
}

func TestInitializeUnknownCartClearsStoredPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.handles.Save(ctx, "session-1", domain.Handle{
		CartID:    "gid://fake/Cart/gone",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, f.store.Initialize(ctx))

	_, found, err := f.handles.Load(ctx, "session-1")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, f.store.Snapshot().Cart)
}

func TestAddItemOpensDrawerBeforeNetworkSettles(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.store.AddItem(context.Background(), "gid://fake/Variant/1", 1))

	snap := f.store.Snapshot()
	require.True(t, snap.DrawerOpen)
	require.True(t, snap.Loading)
	require.Nil(t, snap.Cart)

	f.dispatch.runAll()
	snap = f.store.Snapshot()
	require.False(t, snap.Loading)
	require.NotNil(t, snap.Cart)
	require.Equal(t, 1, snap.Cart.TotalQuantity)
}

func TestAddItemCreatesCartAndPersistsHandle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	f.addAndSettle(t, "gid://fake/Variant/1", 1)

	snap := f.store.Snapshot()
	require.NotNil(t, snap.Cart)
	handle, found, err := f.handles.Load(ctx, "session-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snap.Cart.ID, handle.CartID)
	require.Equal(t, now.Add(DefaultHandleTTL), handle.ExpiresAt)
}

func TestAddItemReusesExistingCart(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	first := f.store.Snapshot().Cart.ID

	f.addAndSettle(t, "gid://fake/Variant/2", 3)

	snap := f.store.Snapshot()
	require.Equal(t, first, snap.Cart.ID)
	require.Equal(t, 4, snap.Cart.TotalQuantity)
	require.Len(t, snap.Cart.Lines, 2)
}

func TestAddItemFailureResynchronizesFromServer(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 1)

	f.gateway.FailAdd = errors.New("boom")
	require.NoError(t, f.store.AddItem(context.Background(), "gid://fake/Variant/2", 1))
	f.dispatch.runAll()

	// The snapshot is the authoritative server cart, not a local guess.
	snap := f.store.Snapshot()
	require.NotNil(t, snap.Cart)
	require.Equal(t, 1, snap.Cart.TotalQuantity)
	require.Len(t, snap.Cart.Lines, 1)
	require.Error(t, snap.LastError)
}

func TestAddItemCreateFailureLeavesEmptyState(t *testing.T) {
	f := newFixture(t)
	f.gateway.FailCreate = errors.New("boom")

	require.NoError(t, f.store.AddItem(context.Background(), "gid://fake/Variant/1", 1))
	f.dispatch.runAll()

	snap := f.store.Snapshot()
	require.Nil(t, snap.Cart)
	require.False(t, snap.Loading)
	require.Error(t, snap.LastError)

	_, found, err := f.handles.Load(context.Background(), "session-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestAddItemRejectsInvalidInputSynchronously(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.store.AddItem(context.Background(), "", 1), domain.ErrEmptyMerchandiseID)
	require.ErrorIs(t, f.store.AddItem(context.Background(), "gid://fake/Variant/1", 0), domain.ErrNonPositiveQty)
	require.Empty(t, f.dispatch.queue)
}

func TestUpdateItemAppliesOptimisticallyThenServerSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	lineID := f.store.Snapshot().Cart.Lines[0].ID

	require.NoError(t, f.store.UpdateItem(context.Background(), lineID, 5))

	// Optimistic edit is visible before the network call settles; totals
	// are untouched until the server snapshot lands.
	snap := f.store.Snapshot()
	require.Equal(t, 5, snap.Cart.FindLine(lineID).Quantity)
	require.Equal(t, 1, snap.Cart.TotalQuantity)
	require.True(t, snap.Loading)

	f.dispatch.runAll()
	snap = f.store.Snapshot()
	require.Equal(t, 5, snap.Cart.FindLine(lineID).Quantity)
	require.Equal(t, 5, snap.Cart.TotalQuantity)
	require.False(t, snap.Loading)
}

func TestUpdateItemFailureRestoresPreviousSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 2)
	lineID := f.store.Snapshot().Cart.Lines[0].ID

	f.gateway.FailUpdate = errors.New("boom")
	require.NoError(t, f.store.UpdateItem(context.Background(), lineID, 9))
	f.dispatch.runAll()

	snap := f.store.Snapshot()
	require.Equal(t, 2, snap.Cart.FindLine(lineID).Quantity)
	require.Equal(t, 2, snap.Cart.TotalQuantity)
	require.Error(t, snap.LastError)
}

func TestUpdateItemZeroQuantityRoutesToRemoval(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 2)
	lineID := f.store.Snapshot().Cart.Lines[0].ID

	require.NoError(t, f.store.UpdateItem(context.Background(), lineID, 0))
	f.dispatch.runAll()

	snap := f.store.Snapshot()
	require.Nil(t, snap.Cart.FindLine(lineID))
	require.Zero(t, snap.Cart.TotalQuantity)
}

func TestRemoveItemDropsLineOptimistically(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	f.addAndSettle(t, "gid://fake/Variant/2", 1)
	lineID := f.store.Snapshot().Cart.Lines[0].ID

	require.NoError(t, f.store.RemoveItem(context.Background(), lineID))

	snap := f.store.Snapshot()
	require.Nil(t, snap.Cart.FindLine(lineID))
	require.Len(t, snap.Cart.Lines, 1)

	f.dispatch.runAll()
	snap = f.store.Snapshot()
	require.Nil(t, snap.Cart.FindLine(lineID))
	require.Equal(t, 1, snap.Cart.TotalQuantity)
}

func TestRemoveItemFailureRestoresPreviousSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	lineID := f.store.Snapshot().Cart.Lines[0].ID

	f.gateway.FailRemove = errors.New("boom")
	require.NoError(t, f.store.RemoveItem(context.Background(), lineID))
	f.dispatch.runAll()

	snap := f.store.Snapshot()
	require.NotNil(t, snap.Cart.FindLine(lineID))
	require.Equal(t, 1, snap.Cart.TotalQuantity)
	require.Error(t, snap.LastError)
}

func TestMutationsWithoutCartReturnErrNoActiveCart(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.store.UpdateItem(context.Background(), "line-1", 2), ErrNoActiveCart)
	require.ErrorIs(t, f.store.RemoveItem(context.Background(), "line-1"), ErrNoActiveCart)
}

func TestRefreshClearsStateWhenCartIsGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	cartID := f.store.Snapshot().Cart.ID

	f.gateway.DropCart(cartID)
	require.NoError(t, f.store.Refresh(ctx))

	snap := f.store.Snapshot()
	require.Nil(t, snap.Cart)
	_, found, err := f.handles.Load(ctx, "session-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRefreshReplacesSnapshotWithServerState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	cartID := f.store.Snapshot().Cart.ID

	// Another session mutates the same cart behind our back.
	_, err := f.gateway.AddLines(ctx, cartID, []domain.LineInput{{MerchandiseID: "gid://fake/Variant/2", Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, f.store.Refresh(ctx))

	require.Equal(t, 3, f.store.Snapshot().Cart.TotalQuantity)
}

func TestDrawerTogglesAreSynchronousAndOrthogonal(t *testing.T) {
	f := newFixture(t)

	f.store.OpenDrawer()
	require.True(t, f.store.Snapshot().DrawerOpen)
	f.store.CloseDrawer()
	require.False(t, f.store.Snapshot().DrawerOpen)

	// A pending network call does not hold the drawer shut or open.
	require.NoError(t, f.store.AddItem(context.Background(), "gid://fake/Variant/1", 1))
	f.store.CloseDrawer()
	require.False(t, f.store.Snapshot().DrawerOpen)
	f.dispatch.runAll()
	require.False(t, f.store.Snapshot().DrawerOpen)
}

func TestExpiredHandleDuringAddCreatesFreshCart(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return current }))
	f.addAndSettle(t, "gid://fake/Variant/1", 1)
	first := f.store.Snapshot().Cart.ID

	current = current.Add(DefaultHandleTTL + time.Hour)
	f.addAndSettle(t, "gid://fake/Variant/2", 1)

	snap := f.store.Snapshot()
	require.NotEqual(t, first, snap.Cart.ID)
	require.Equal(t, 1, snap.Cart.TotalQuantity)
}
