package memory

import (
	"context"
	"sync"
	"time"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

var _ ports.HandleStore = (*HandleStore)(nil)

// HandleStore keeps cart handles in process memory, keyed by session.
type HandleStore struct {
	mu      sync.Mutex
	handles map[string]domain.Handle
}

// NewHandleStore constructs an empty store.
func NewHandleStore() *HandleStore {
	return &HandleStore{handles: map[string]domain.Handle{}}
}

// Load returns the stored handle for the session, if any.
func (s *HandleStore) Load(_ context.Context, sessionKey string) (domain.Handle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.handles[sessionKey]
	return handle, ok, nil
}

// Save stores the handle pair, replacing any previous one.
func (s *HandleStore) Save(_ context.Context, sessionKey string, handle domain.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[sessionKey] = handle
	return nil
}

// Clear drops the session's handle. Clearing an absent key is a no-op.
func (s *HandleStore) Clear(_ context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, sessionKey)
	return nil
}

// PurgeExpired removes handles whose expiry precedes now and reports how
// many were dropped.
func (s *HandleStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, handle := range s.handles {
		if handle.Expired(now) {
			delete(s.handles, key)
			purged++
		}
	}
	return purged, nil
}
