package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the cart bounded context. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&cartHandleRecord{},
		&cartActivityRecord{},
	)
}

// Handle schema mirrors the cart Postgres handle store.
type cartHandleRecord struct {
	SessionKey string    `gorm:"primaryKey;column:session_key;size:128"`
	CartID     string    `gorm:"column:cart_id;size:512"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (cartHandleRecord) TableName() string { return "cart_handles" }

// Activity schema mirrors the cart Postgres activity log.
type cartActivityRecord struct {
	ID         int64          `gorm:"primaryKey;column:id;autoIncrement"`
	CartID     string         `gorm:"column:cart_id;size:512;index"`
	Operation  string         `gorm:"column:operation;type:varchar(32)"`
	LineIDs    pq.StringArray `gorm:"column:line_ids;type:text[]"`
	Quantity   int            `gorm:"column:quantity"`
	OccurredAt time.Time      `gorm:"column:occurred_at;index"`
}

func (cartActivityRecord) TableName() string { return "cart_activity" }
