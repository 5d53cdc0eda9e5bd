// Package sync keeps one session's cart state coherent with the remote
// commerce platform: it owns the durable handle + expiry pair, publishes
// optimistic snapshots before network calls settle, and resynchronizes or
// rolls back when those calls fail.
package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

// DefaultHandleTTL is how long a newly created cart handle stays valid.
const DefaultHandleTTL = 7 * 24 * time.Hour

// ErrNoActiveCart is returned by line mutations when no cart exists yet.
// Adding an item is the only operation that creates one.
var ErrNoActiveCart = errors.New("no active cart")

// Snapshot is a point-in-time copy of the store's published state. The cart
// is deep-copied, so callers can hold it across later mutations.
type Snapshot struct {
	Cart       *domain.Cart
	Loading    bool
	DrawerOpen bool
	LastError  error
}

// Store synchronizes one session's cart. All published state lives behind a
// single mutex; network completions are applied through the dispatch hook so
// optimistic state is visible before the remote call settles. Completions
// are last-write-wins at snapshot level, with no sequencing between
// overlapping calls.
type Store struct {
	service    ports.Service
	handles    ports.HandleStore
	sessionKey string
	ttl        time.Duration
	clock      func() time.Time
	dispatch   func(func())
	logger     *slog.Logger

	mu         stdsync.Mutex
	handle     *domain.Handle
	cart       *domain.Cart
	loading    bool
	drawerOpen bool
	lastErr    error
}

// Option customizes the store.
type Option func(*Store)

// WithTTL overrides the handle lifetime used when a cart is created.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for expiry tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDispatch overrides how network completions run. The default spawns a
// goroutine; tests pass a synchronous function to observe each phase.
func WithDispatch(dispatch func(func())) Option {
	return func(s *Store) {
		if dispatch != nil {
			s.dispatch = dispatch
		}
	}
}

// WithLogger attaches a logger for background failures that have no caller
// to return to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New constructs a store for one session. An empty sessionKey gets a fresh
// random one, for sessions that have not persisted anything yet.
func New(service ports.Service, handles ports.HandleStore, sessionKey string, opts ...Option) *Store {
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}
	s := &Store{
		service:    service,
		handles:    handles,
		sessionKey: sessionKey,
		ttl:        DefaultHandleTTL,
		clock:      time.Now,
		dispatch:   func(f func()) { go f() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Initialize loads the stored handle and, when it is still valid, fetches
// the authoritative cart. An absent handle yields the empty state; an
// expired handle, a not-found cart, or a fetch failure clears the stored
// pair so the next add starts fresh. Only handle-store failures are
// returned.
func (s *Store) Initialize(ctx context.Context) error {
	handle, found, err := s.handles.Load(ctx, s.sessionKey)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if handle.Expired(s.clock()) {
		return s.clearStored(ctx)
	}

	cart, err := s.service.GetCart(ctx, handle.CartID)
	if err != nil {
		// Not-found and transport errors are handled alike: the handle
		// is no longer trustworthy.
		return s.clearStored(ctx)
	}

	s.mu.Lock()
	s.handle = &handle
	s.cart = cart
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// AddItem adds merchandise to the cart, creating the cart on first use. The
// drawer opens and the loading flag raises synchronously; the network call
// completes through dispatch. On failure the authoritative cart is
// re-fetched rather than guessed at.
func (s *Store) AddItem(ctx context.Context, merchandiseID string, quantity int) error {
	input := domain.LineInput{MerchandiseID: merchandiseID, Quantity: quantity}
	if err := input.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.drawerOpen = true
	s.loading = true
	handle := s.validHandleLocked()
	s.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	s.dispatch(func() {
		if handle == nil {
			s.createWithLine(bg, input)
			return
		}
		cart, err := s.service.AddLines(bg, handle.CartID, []domain.LineInput{input})
		if err != nil {
			s.logWarn(bg, "add failed, resynchronizing", err)
			s.resync(bg, *handle, err)
			return
		}
		s.publish(cart, nil)
	})
	return nil
}

// UpdateItem rewrites a line's quantity. A quantity of zero or below routes
// to removal. The local snapshot is edited synchronously; on failure the
// carried previous snapshot is restored.
func (s *Store) UpdateItem(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, lineID)
	}
	update := domain.LineUpdate{LineID: lineID, Quantity: quantity}
	if err := update.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.cart == nil || s.handle == nil {
		s.mu.Unlock()
		return ErrNoActiveCart
	}
	previous := s.cart
	cartID := s.handle.CartID
	s.cart = previous.WithLineQuantity(lineID, quantity)
	s.loading = true
	s.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	s.dispatch(func() {
		cart, err := s.service.UpdateLines(bg, cartID, []domain.LineUpdate{update})
		if err != nil {
			s.logWarn(bg, "update failed, restoring previous snapshot", err)
			s.restore(previous, err)
			return
		}
		s.publish(cart, nil)
	})
	return nil
}

// RemoveItem deletes a line. The local snapshot drops it synchronously; on
// failure the carried previous snapshot is restored.
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	if lineID == "" {
		return domain.ErrEmptyLineID
	}

	s.mu.Lock()
	if s.cart == nil || s.handle == nil {
		s.mu.Unlock()
		return ErrNoActiveCart
	}
	previous := s.cart
	cartID := s.handle.CartID
	s.cart = previous.WithoutLine(lineID)
	s.loading = true
	s.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	s.dispatch(func() {
		cart, err := s.service.RemoveLines(bg, cartID, []string{lineID})
		if err != nil {
			s.logWarn(bg, "remove failed, restoring previous snapshot", err)
			s.restore(previous, err)
			return
		}
		s.publish(cart, nil)
	})
	return nil
}

// Refresh re-fetches the authoritative cart for the current handle. A
// not-found or transport failure clears both the snapshot and the stored
// pair.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	handle := s.validHandleLocked()
	s.mu.Unlock()
	if handle == nil {
		return nil
	}
	s.resync(ctx, *handle, nil)
	return nil
}

// OpenDrawer raises the drawer flag. Synchronous and orthogonal to network
// state.
func (s *Store) OpenDrawer() {
	s.mu.Lock()
	s.drawerOpen = true
	s.mu.Unlock()
}

// CloseDrawer lowers the drawer flag.
func (s *Store) CloseDrawer() {
	s.mu.Lock()
	s.drawerOpen = false
	s.mu.Unlock()
}

// Snapshot returns a copy of the published state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Cart:       s.cart.Clone(),
		Loading:    s.loading,
		DrawerOpen: s.drawerOpen,
		LastError:  s.lastErr,
	}
}

// validHandleLocked returns the current handle when present and unexpired.
// An expired handle is dropped in place along with the snapshot. Callers
// hold the mutex.
func (s *Store) validHandleLocked() *domain.Handle {
	if s.handle == nil {
		return nil
	}
	if s.handle.Expired(s.clock()) {
		s.handle = nil
		s.cart = nil
		return nil
	}
	handle := *s.handle
	return &handle
}

func (s *Store) createWithLine(ctx context.Context, input domain.LineInput) {
	cart, err := s.service.CreateCart(ctx, []domain.LineInput{input})
	if err != nil {
		s.fail(err)
		return
	}
	handle := domain.Handle{CartID: cart.ID, ExpiresAt: s.clock().Add(s.ttl)}
	if err := s.handles.Save(ctx, s.sessionKey, handle); err != nil {
		// The cart exists remotely; losing the handle only costs this
		// session a restart from empty.
		s.logWarn(ctx, "failed to persist cart handle", err)
	}
	s.publish(cart, &handle)
}

// resync replaces the snapshot with the authoritative cart. When the fetch
// itself fails, or the cart is gone, both the snapshot and the stored pair
// are cleared. opErr is the error of the operation that triggered the
// resync, surfaced to readers even when the resync succeeds.
func (s *Store) resync(ctx context.Context, handle domain.Handle, opErr error) {
	cart, err := s.service.GetCart(ctx, handle.CartID)
	if err != nil {
		if clearErr := s.clearStored(ctx); clearErr != nil {
			s.logWarn(ctx, "failed to clear stored cart handle", clearErr)
		}
		if opErr == nil {
			opErr = err
		}
		s.mu.Lock()
		s.handle = nil
		s.cart = nil
		s.loading = false
		s.lastErr = opErr
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.handle = &handle
	s.cart = cart
	s.loading = false
	s.lastErr = opErr
	s.mu.Unlock()
}

// publish installs a server snapshot, and optionally a new handle, clearing
// the loading flag and any prior error.
func (s *Store) publish(cart *domain.Cart, handle *domain.Handle) {
	s.mu.Lock()
	if handle != nil {
		s.handle = handle
	}
	s.cart = cart
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()
}

// restore reinstates the pre-mutation snapshot after a failed optimistic
// edit.
func (s *Store) restore(previous *domain.Cart, err error) {
	s.mu.Lock()
	s.cart = previous
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Store) clearStored(ctx context.Context) error {
	return s.handles.Clear(ctx, s.sessionKey)
}

func (s *Store) logWarn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg,
		slog.String("session", s.sessionKey),
		slog.String("error", err.Error()))
}
