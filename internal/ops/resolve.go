package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

// ResolveInput contains parameters for the Resolve operation.
type ResolveInput struct {
	Route   string // any casing, with or without slashes
	OwnerID string // optional; enables the owner's custom routes
}

// Resolve maps a user-typed route onto a known route. Official routes are
// checked first; an official match shadows any custom route with the same key.
// A miss returns (nil, nil).
func Resolve(ctx context.Context, database *sql.DB, cfg *config.Config, input ResolveInput) (*route.Suggestion, error) {
	key := route.NormalizeKey(input.Route)
	if key == "/" {
		return nil, nil
	}

	entries, err := db.ListRegistryEntries(ctx, database)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if route.NormalizeKey(e.Slash) == key {
			s := route.FromRegistryEntry(e, cfg.Gate())
			return &s, nil
		}
	}

	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return nil, nil
	}

	c, err := db.GetCustomRouteByKey(ctx, database, ownerID, key)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s := route.FromCustomRoute(*c)
	return &s, nil
}

// LookupInput contains parameters for the Lookup operation.
type LookupInput struct {
	Route   string
	OwnerID string
	Limit   int // suggestion limit on a miss; default 20, max 100
}

// LookupOutput contains the result of the Lookup operation.
type LookupOutput struct {
	Status      Status             `json:"status"`
	Query       string             `json:"query"`
	Key         string             `json:"key"`
	Route       *route.Suggestion  `json:"route,omitempty"`
	RedirectURL string             `json:"redirect_url,omitempty"`
	Suggestions []route.Suggestion `json:"suggestions,omitempty"`
}

// Lookup resolves a route and reports what a caller should do with it:
// switch to it, follow its redirect, or offer prefix suggestions instead.
func Lookup(ctx context.Context, database *sql.DB, cfg *config.Config, input LookupInput) (*LookupOutput, error) {
	out := &LookupOutput{
		Query: input.Route,
		Key:   route.NormalizeKey(input.Route),
	}

	s, err := Resolve(ctx, database, cfg, ResolveInput{Route: input.Route, OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	if s == nil {
		suggested, err := Suggest(ctx, database, cfg, SuggestInput{
			Prefix:  input.Route,
			OwnerID: input.OwnerID,
			Limit:   input.Limit,
		})
		if err != nil {
			return nil, err
		}
		out.Status = StatusUnknown
		out.Suggestions = suggested.Items
		return out, nil
	}

	out.Route = s
	if s.RedirectURL != "" {
		out.Status = StatusRedirected
		out.RedirectURL = s.RedirectURL
		return out, nil
	}

	out.Status = StatusResolved
	return out, nil
}
