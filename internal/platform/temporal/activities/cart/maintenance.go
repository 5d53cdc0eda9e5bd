package cart

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"

	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
)

const (
	// PurgeExpiredHandlesActivityName drops cart handles past their expiry.
	PurgeExpiredHandlesActivityName = "cart.activities.PurgeExpiredHandles"
	// TrimActivityLogActivityName drops activity entries past retention.
	TrimActivityLogActivityName = "cart.activities.TrimActivityLog"
)

// ActivityTrimmer trims the durable cart activity log.
type ActivityTrimmer interface {
	TrimBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeResult reports how many rows a maintenance activity removed.
type PurgeResult struct {
	Removed int64
}

// Activities groups maintenance activities for the cart bounded context.
type Activities struct {
	handles cartports.HandleStore
	trimmer ActivityTrimmer
}

// NewActivities wires the cart maintenance collaborators. trimmer may be nil
// when no durable activity log is configured.
func NewActivities(handles cartports.HandleStore, trimmer ActivityTrimmer) *Activities {
	return &Activities{handles: handles, trimmer: trimmer}
}

// PurgeExpiredHandles removes cart handles whose expiry has passed.
func (a *Activities) PurgeExpiredHandles(ctx context.Context) (PurgeResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.handles == nil {
		logger.Error("handle purge activity not initialized")
		return PurgeResult{}, errors.New("handle purge activity not initialized")
	}
	logger.Info("PurgeExpiredHandles activity started")
	purged, err := a.handles.PurgeExpired(ctx, time.Now())
	if err != nil {
		logger.Error("PurgeExpiredHandles activity failed", "error", err)
		return PurgeResult{}, err
	}
	logger.Info("PurgeExpiredHandles activity completed", "purged", purged)
	return PurgeResult{Removed: purged}, nil
}

// TrimActivityLog removes activity entries older than the retention cutoff.
func (a *Activities) TrimActivityLog(ctx context.Context, cutoff time.Time) (PurgeResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("activity trim activity not initialized")
		return PurgeResult{}, errors.New("activity trim activity not initialized")
	}
	if a.trimmer == nil {
		logger.Info("activity log not configured; skipping trim")
		return PurgeResult{}, nil
	}
	logger.Info("TrimActivityLog activity started", "cutoff", cutoff)
	trimmed, err := a.trimmer.TrimBefore(ctx, cutoff)
	if err != nil {
		logger.Error("TrimActivityLog activity failed", "error", err)
		return PurgeResult{}, err
	}
	logger.Info("TrimActivityLog activity completed", "trimmed", trimmed)
	return PurgeResult{Removed: trimmed}, nil
}
