package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
	"github.com/brooksai/slashhub/internal/usage"
)

// UsageStore is the SQLite-backed usage.Store for a single owner.
type UsageStore struct {
	db      *sql.DB
	ownerID string
}

var _ usage.Store = (*UsageStore)(nil)

// NewUsageStore returns a usage store scoped to ownerID.
func NewUsageStore(db *sql.DB, ownerID string) *UsageStore {
	return &UsageStore{db: db, ownerID: ownerID}
}

// Get returns how many times the owner switched to routeKey.
func (s *UsageStore) Get(ctx context.Context, routeKey string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM route_usage WHERE owner_id = ? AND route_key = ?`,
		s.ownerID, route.NormalizeKey(routeKey),
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// Increment records one more switch to routeKey.
func (s *UsageStore) Increment(ctx context.Context, routeKey string) error {
	query := `
		INSERT INTO route_usage (owner_id, route_key, count, last_used_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(owner_id, route_key) DO UPDATE SET
			count = count + 1,
			last_used_at = excluded.last_used_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.ownerID, route.NormalizeKey(routeKey), time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
