package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	cartports "github.com/emberline/storefront-api/internal/domains/cart/ports"
)

// ActivityLog records cart mutations for support and debugging. Entries are
// append-only; the worker trims them alongside expired handles.
type ActivityLog struct {
	db *gorm.DB
}

// NewActivityLog wires a PostgreSQL-backed activity log.
func NewActivityLog(db *gorm.DB) *ActivityLog {
	return &ActivityLog{db: db}
}

type cartActivityRecord struct {
	ID         int64          `gorm:"primaryKey;column:id;autoIncrement"`
	CartID     string         `gorm:"column:cart_id;size:512;index"`
	Operation  string         `gorm:"column:operation;type:varchar(32)"`
	LineIDs    pq.StringArray `gorm:"column:line_ids;type:text[]"`
	Quantity   int            `gorm:"column:quantity"`
	OccurredAt time.Time      `gorm:"column:occurred_at;index"`
}

func (cartActivityRecord) TableName() string { return "cart_activity" }

// Record appends one entry.
func (l *ActivityLog) Record(ctx context.Context, entry cartports.ActivityEntry) error {
	if l == nil || l.db == nil {
		return errors.New("postgres activity log not configured")
	}
	occurred := entry.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	rec := cartActivityRecord{
		CartID:     entry.CartID,
		Operation:  entry.Operation,
		LineIDs:    pq.StringArray(entry.LineIDs),
		Quantity:   entry.Quantity,
		OccurredAt: occurred,
	}
	return l.db.WithContext(ctx).Create(&rec).Error
}

// TrimBefore deletes entries older than the cutoff and reports the count.
func (l *ActivityLog) TrimBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if l == nil || l.db == nil {
		return 0, errors.New("postgres activity log not configured")
	}
	res := l.db.WithContext(ctx).Where("occurred_at < ?", cutoff).Delete(&cartActivityRecord{})
	return res.RowsAffected, res.Error
}

var _ cartports.ActivityRecorder = (*ActivityLog)(nil)
