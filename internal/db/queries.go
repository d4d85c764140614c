package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.HubError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Official route registry ---

// UpsertRegistryEntry inserts an official route, or updates label and slash
// casing of the entry that already owns the same normalized key.
// On return e.ID and e.CreatedAt reflect the stored row.
func UpsertRegistryEntry(ctx context.Context, db *sql.DB, e *route.RegistryEntry) error {
	query := `
		INSERT INTO route_registry (id, label, slash, slash_norm, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(slash_norm) DO UPDATE SET
			label = excluded.label,
			slash = excluded.slash,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	err := db.QueryRowContext(ctx, query,
		e.ID, e.Label, e.Slash, e.SlashNorm, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListRegistryEntries returns every official route ordered by normalized key.
func ListRegistryEntries(ctx context.Context, db *sql.DB) ([]route.RegistryEntry, error) {
	query := `
		SELECT id, label, slash, slash_norm, created_at, updated_at
		FROM route_registry
		ORDER BY slash_norm
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var entries []route.RegistryEntry
	for rows.Next() {
		var e route.RegistryEntry
		if err := rows.Scan(&e.ID, &e.Label, &e.Slash, &e.SlashNorm, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return entries, nil
}

// RegistryKeyExists checks if an official route owns the normalized key.
func RegistryKeyExists(ctx context.Context, db *sql.DB, slashNorm string) (bool, error) {
	query := `SELECT 1 FROM route_registry WHERE slash_norm = ? LIMIT 1`

	var exists int
	err := db.QueryRowContext(ctx, query, slashNorm).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return true, nil
}

// DeleteRegistryEntry removes the official route with the given normalized key.
func DeleteRegistryEntry(ctx context.Context, db *sql.DB, slashNorm string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM route_registry WHERE slash_norm = ?`, slashNorm)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound("route", slashNorm)
	}

	return nil
}

// --- Custom (owner-scoped) routes ---

// InsertCustomRoute stores a new custom route.
// Returns ErrUniqueConstraint if the owner already has a route with the same key.
func InsertCustomRoute(ctx context.Context, db *sql.DB, c *route.CustomRoute) error {
	query := `
		INSERT INTO custom_routes (id, owner_id, name, route, route_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		c.ID, c.OwnerID, c.Name, toNullString(c.Route), c.RouteKey, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// GetCustomRouteByKey looks up an owner's custom route by its (owner, route key)
// composite key.
func GetCustomRouteByKey(ctx context.Context, db *sql.DB, ownerID, routeKey string) (*route.CustomRoute, error) {
	query := `
		SELECT id, owner_id, name, route, route_key, created_at, updated_at
		FROM custom_routes
		WHERE owner_id = ? AND route_key = ?
	`

	c, err := scanCustomRoute(db.QueryRowContext(ctx, query, ownerID, routeKey))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("ato", routeKey)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return c, nil
}

// ListCustomRoutesByOwner returns an owner's custom routes, oldest first.
func ListCustomRoutesByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]route.CustomRoute, error) {
	query := `
		SELECT id, owner_id, name, route, route_key, created_at, updated_at
		FROM custom_routes
		WHERE owner_id = ?
		ORDER BY created_at, id
	`

	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var routes []route.CustomRoute
	for rows.Next() {
		c, err := scanCustomRoute(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		routes = append(routes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return routes, nil
}

// CountCustomRoutes returns how many custom routes an owner has.
func CountCustomRoutes(ctx context.Context, db *sql.DB, ownerID string) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_routes WHERE owner_id = ?`, ownerID).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// DeleteCustomRoute removes one of an owner's custom routes by ID.
// Routes owned by someone else are reported as not found.
func DeleteCustomRoute(ctx context.Context, db *sql.DB, ownerID, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM custom_routes WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound("ato", id)
	}

	return nil
}

// --- Chat sessions ---

// InsertSession stores a new chat session.
func InsertSession(ctx context.Context, db *sql.DB, s *route.Session) error {
	query := `
		INSERT INTO chat_sessions (id, owner_id, active_route, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := db.ExecContext(ctx, query, s.ID, s.OwnerID, s.ActiveRoute, s.CreatedAt, s.UpdatedAt); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}
	return nil
}

// GetSession retrieves a chat session by ID.
func GetSession(ctx context.Context, db *sql.DB, id string) (*route.Session, error) {
	query := `
		SELECT id, owner_id, active_route, created_at, updated_at
		FROM chat_sessions
		WHERE id = ?
	`

	var s route.Session
	err := db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.OwnerID, &s.ActiveRoute, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("chat", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &s, nil
}

// UpdateActiveRoute persists a chat's active route and bumps updated_at.
func UpdateActiveRoute(ctx context.Context, db *sql.DB, id, activeRoute string) (int64, error) {
	now := time.Now().Unix()

	result, err := db.ExecContext(ctx,
		`UPDATE chat_sessions SET active_route = ?, updated_at = ? WHERE id = ?`,
		activeRoute, now, id,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return 0, errors.NewNotFound("chat", id)
	}

	return now, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCustomRoute scans a single row into a CustomRoute struct.
func scanCustomRoute(row rowScanner) (*route.CustomRoute, error) {
	var (
		c      route.CustomRoute
		rawRte sql.NullString
	)

	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &rawRte, &c.RouteKey, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Route = fromNullString(rawRte)

	return &c, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
