package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

// RegisterRouteInput contains parameters for the RegisterRoute operation.
type RegisterRouteInput struct {
	Slash string // required, stored as given (trimmed) so raw-prefix matching works
	Label string // default: the slash without surrounding slashes
}

// RegisterRouteOutput contains the result of the RegisterRoute operation.
type RegisterRouteOutput struct {
	ID    string           `json:"id"`
	Route route.Suggestion `json:"route"`
}

// RegisterRoute adds an official route, or updates the label and casing of the
// entry that already owns the same normalized key.
func RegisterRoute(ctx context.Context, database *sql.DB, cfg *config.Config, input RegisterRouteInput) (*RegisterRouteOutput, error) {
	e, err := newRegistryEntry(input.Label, input.Slash)
	if err != nil {
		return nil, err
	}

	if err := db.UpsertRegistryEntry(ctx, database, e); err != nil {
		return nil, err
	}

	return &RegisterRouteOutput{
		ID:    e.ID,
		Route: route.FromRegistryEntry(*e, cfg.Gate()),
	}, nil
}

// newRegistryEntry validates a label/slash pair and builds a fresh entry.
// The slash keeps its registered form; only the key is normalized.
func newRegistryEntry(label, slash string) (*route.RegistryEntry, error) {
	raw := strings.TrimSpace(slash)
	if route.SanitizeSegment(raw) == "" {
		return nil, errors.NewInvalidRequest("slash must contain at least one letter, digit, '-' or '_'")
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = strings.TrimSpace(strings.Trim(raw, "/"))
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	return &route.RegistryEntry{
		ID:        id,
		Label:     label,
		Slash:     raw,
		SlashNorm: route.NormalizeKey(raw),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListRegistryOutput contains the result of the ListRegistry operation.
type ListRegistryOutput struct {
	Items []route.Suggestion `json:"items"`
	Total int                `json:"total"`
}

// ListRegistry returns every official route as a suggestion, ordered by key.
func ListRegistry(ctx context.Context, database *sql.DB, cfg *config.Config) (*ListRegistryOutput, error) {
	entries, err := db.ListRegistryEntries(ctx, database)
	if err != nil {
		return nil, err
	}

	gate := cfg.Gate()
	items := make([]route.Suggestion, 0, len(entries))
	for _, e := range entries {
		items = append(items, route.FromRegistryEntry(e, gate))
	}

	return &ListRegistryOutput{Items: items, Total: len(items)}, nil
}

// RemoveRouteInput contains parameters for the RemoveRoute operation.
type RemoveRouteInput struct {
	Slash string // required, any casing
}

// RemoveRouteOutput contains the result of the RemoveRoute operation.
type RemoveRouteOutput struct {
	Removed bool   `json:"removed"`
	Route   string `json:"route"`
}

// RemoveRoute deletes an official route by normalized key.
func RemoveRoute(ctx context.Context, database *sql.DB, input RemoveRouteInput) (*RemoveRouteOutput, error) {
	key := route.NormalizeKey(input.Slash)
	if key == "/" {
		return nil, errors.NewInvalidRequest("slash is required")
	}

	if err := db.DeleteRegistryEntry(ctx, database, key); err != nil {
		return nil, err
	}

	return &RemoveRouteOutput{Removed: true, Route: key}, nil
}
