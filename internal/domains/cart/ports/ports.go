// Package ports declares the cart bounded context interfaces.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
)

// ErrCartNotFound is the typed miss returned when the platform reports no
// cart for a handle. Callers branch on it with errors.Is instead of string
// matching; a transport failure is any other error.
var ErrCartNotFound = errors.New("cart not found")

// Gateway executes cart operations against the remote commerce platform.
// Every write returns the complete resulting snapshot, never a diff.
type Gateway interface {
	CreateCart(ctx context.Context, lines []domain.LineInput) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
}

// Service is the action-layer port: validated cart operations with all
// failures reported through the error return.
type Service interface {
	CreateCart(ctx context.Context, lines []domain.LineInput) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
}

// HandleStore durably keeps the cart handle + expiry pair per session key.
// Save and Clear act on the pair atomically.
type HandleStore interface {
	Load(ctx context.Context, sessionKey string) (domain.Handle, bool, error)
	Save(ctx context.Context, sessionKey string, handle domain.Handle) error
	Clear(ctx context.Context, sessionKey string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// MaintenanceOrchestrator runs housekeeping over stored handles, either
// inline or on a Temporal cluster.
type MaintenanceOrchestrator interface {
	PurgeExpiredHandles(ctx context.Context) (int64, error)
}

// ActivityEntry is one recorded cart mutation, kept for support and
// debugging.
type ActivityEntry struct {
	CartID     string
	Operation  string
	LineIDs    []string
	Quantity   int
	OccurredAt time.Time
}

// ActivityRecorder appends cart mutations to a durable log. Recording is
// best effort; callers must not fail the operation on a recorder error.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}
