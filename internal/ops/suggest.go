package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/route"
	"github.com/brooksai/slashhub/internal/usage"
)

// SuggestInput contains parameters for the Suggest operation.
type SuggestInput struct {
	Prefix  string // empty matches everything
	OwnerID string // optional; adds the owner's custom routes
	Limit   int    // default: 20, max: 100
	ByUsage bool   // order by the owner's usage counts first
}

// SuggestOutput contains the result of the Suggest operation.
type SuggestOutput struct {
	Items []route.Suggestion `json:"items"`
	Total int                `json:"total"` // matches before the limit was applied
}

// Suggest returns the official and custom routes matching a typed prefix.
// Official routes come first and shadow custom routes with the same key.
func Suggest(ctx context.Context, database *sql.DB, cfg *config.Config, input SuggestInput) (*SuggestOutput, error) {
	limit := clampLimit(input.Limit, DefaultSuggestLimit, MaxSuggestLimit)

	all, err := routable(ctx, database, cfg, input.OwnerID)
	if err != nil {
		return nil, err
	}

	items := route.FilterByPrefix(all, input.Prefix)
	route.SortSuggestions(items)

	ownerID := strings.TrimSpace(input.OwnerID)
	if input.ByUsage && ownerID != "" {
		if err := usage.SortByUsage(ctx, db.NewUsageStore(database, ownerID), items); err != nil {
			return nil, err
		}
	}

	total := len(items)
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []route.Suggestion{}
	}

	return &SuggestOutput{Items: items, Total: total}, nil
}

// routable returns the merged official and custom routes visible to an owner.
func routable(ctx context.Context, database *sql.DB, cfg *config.Config, ownerID string) ([]route.Suggestion, error) {
	entries, err := db.ListRegistryEntries(ctx, database)
	if err != nil {
		return nil, err
	}

	gate := cfg.Gate()
	official := make([]route.Suggestion, 0, len(entries))
	for _, e := range entries {
		official = append(official, route.FromRegistryEntry(e, gate))
	}

	var custom []route.Suggestion
	if ownerID = strings.TrimSpace(ownerID); ownerID != "" {
		rows, err := db.ListCustomRoutesByOwner(ctx, database, ownerID)
		if err != nil {
			return nil, err
		}
		custom = make([]route.Suggestion, 0, len(rows))
		for _, c := range rows {
			custom = append(custom, route.FromCustomRoute(c))
		}
	}

	return route.MergeRoutes(official, custom), nil
}
