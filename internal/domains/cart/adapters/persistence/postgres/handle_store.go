// Package postgres persists cart handles and activity in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
)

// DefaultHandleTTL is the fallback lifetime of a stored cart handle.
const DefaultHandleTTL = 7 * 24 * time.Hour

// HandleStore persists the cart handle + expiry pair per session key.
type HandleStore struct {
	db *gorm.DB
}

// NewHandleStore wires a PostgreSQL-backed handle store. Caller owns the DB
// lifecycle.
func NewHandleStore(db *gorm.DB) *HandleStore {
	return &HandleStore{db: db}
}

type cartHandleRecord struct {
	SessionKey string    `gorm:"primaryKey;column:session_key;size:128"`
	CartID     string    `gorm:"column:cart_id;size:512"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (cartHandleRecord) TableName() string { return "cart_handles" }

// Load returns the stored handle for the session, if any.
func (s *HandleStore) Load(ctx context.Context, sessionKey string) (domain.Handle, bool, error) {
	if err := s.ensureDB(); err != nil {
		return domain.Handle{}, false, err
	}
	var rec cartHandleRecord
	err := s.db.WithContext(ctx).First(&rec, "session_key = ?", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Handle{}, false, nil
	}
	if err != nil {
		return domain.Handle{}, false, err
	}
	return domain.Handle{CartID: rec.CartID, ExpiresAt: rec.ExpiresAt}, true, nil
}

// Save upserts the handle pair keyed by session.
func (s *HandleStore) Save(ctx context.Context, sessionKey string, handle domain.Handle) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" || strings.TrimSpace(handle.CartID) == "" {
		return errors.New("session key and cart ID are required")
	}
	rec := cartHandleRecord{
		SessionKey: sessionKey,
		CartID:     handle.CartID,
		ExpiresAt:  handle.ExpiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"cart_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Clear removes the session's handle. Clearing an absent key is a no-op.
func (s *HandleStore) Clear(ctx context.Context, sessionKey string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&cartHandleRecord{}, "session_key = ?", sessionKey).Error
}

// PurgeExpired removes all handles past their expiry and reports the count.
func (s *HandleStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&cartHandleRecord{})
	return res.RowsAffected, res.Error
}

func (s *HandleStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres handle store not configured")
	}
	return nil
}

var _ cartports.HandleStore = (*HandleStore)(nil)
