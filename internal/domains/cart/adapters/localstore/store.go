// Package localstore persists cart handles in a local SQLite file. It is the
// single-process counterpart of the Postgres handle store, suited to the dev
// server and CLI tooling where no shared database exists.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/emberline/storefront-api/internal/domains/cart/domain"
	"github.com/emberline/storefront-api/internal/domains/cart/ports"
)

var _ ports.HandleStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS cart_handles (
	session_key TEXT PRIMARY KEY,
	cart_id     TEXT NOT NULL,
	expires_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cart_handles_expires_at ON cart_handles (expires_at);
`

// Store is a SQLite-backed handle store. The handle and its expiry live in
// one row, so Save and Clear are atomic over the pair.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the database at path and prepares the
// schema. Parent directories are created as required.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("localstore: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("localstore: %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store. Each call yields an isolated database.
func OpenMemory() (*Store, error) {
	store, err := Open(":memory:")
	if err != nil {
		return nil, err
	}
	// A second connection to :memory: would see a different database.
	store.db.SetMaxOpenConns(1)
	return store, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored handle for the session, if any.
func (s *Store) Load(ctx context.Context, sessionKey string) (domain.Handle, bool, error) {
	var cartID string
	var expiresAt int64
	row := s.db.QueryRowContext(ctx,
		`SELECT cart_id, expires_at FROM cart_handles WHERE session_key = ?`, sessionKey)
	if err := row.Scan(&cartID, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Handle{}, false, nil
		}
		return domain.Handle{}, false, fmt.Errorf("localstore: load: %w", err)
	}
	return domain.Handle{CartID: cartID, ExpiresAt: time.Unix(expiresAt, 0).UTC()}, true, nil
}

// Save upserts the handle pair in a single statement.
func (s *Store) Save(ctx context.Context, sessionKey string, handle domain.Handle) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_handles (session_key, cart_id, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (session_key) DO UPDATE SET
			cart_id = excluded.cart_id,
			expires_at = excluded.expires_at`,
		sessionKey, handle.CartID, handle.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("localstore: save: %w", err)
	}
	return nil
}

// Clear drops the session's handle. Clearing an absent key is a no-op.
func (s *Store) Clear(ctx context.Context, sessionKey string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_handles WHERE session_key = ?`, sessionKey); err != nil {
		return fmt.Errorf("localstore: clear: %w", err)
	}
	return nil
}

// PurgeExpired removes handles whose expiry precedes now.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_handles WHERE expires_at < ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("localstore: purge: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("localstore: purge count: %w", err)
	}
	return purged, nil
}
