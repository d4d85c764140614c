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

// CreateCustomRouteInput contains parameters for the CreateCustomRoute operation.
type CreateCustomRouteInput struct {
	OwnerID string  // required
	Name    string  // required
	Route   *string // optional; defaults to Name. An http(s) URL makes the ATO a redirect.
}

// CreateCustomRouteOutput contains the result of the CreateCustomRoute operation.
type CreateCustomRouteOutput struct {
	ID       string           `json:"id"`
	RouteKey string           `json:"route_key"`
	Route    route.Suggestion `json:"route"`
}

// CreateCustomRoute stores a user-authored ATO route for one owner.
// The route key may not shadow an official route, must be unique per owner,
// and the owner's total is capped by cfg.MaxCustomRoutes.
func CreateCustomRoute(ctx context.Context, database *sql.DB, cfg *config.Config, input CreateCustomRouteInput) (*CreateCustomRouteOutput, error) {
	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return nil, errors.NewInvalidRequest("owner_id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}

	now := time.Now().Unix()
	c := &route.CustomRoute{
		OwnerID:   ownerID,
		Name:      name,
		Route:     cleanOptionalString(input.Route),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.RouteKey = route.NormalizeKey(c.Source())
	if c.RouteKey == "/" {
		return nil, errors.NewInvalidRequest("route must contain at least one letter, digit, '-' or '_'")
	}

	reserved, err := db.RegistryKeyExists(ctx, database, c.RouteKey)
	if err != nil {
		return nil, err
	}
	if reserved {
		return nil, errors.NewRouteReserved(c.RouteKey)
	}

	if cfg.MaxCustomRoutes > 0 {
		n, err := db.CountCustomRoutes(ctx, database, ownerID)
		if err != nil {
			return nil, err
		}
		if n >= cfg.MaxCustomRoutes {
			return nil, errors.NewLimitExceeded(cfg.MaxCustomRoutes)
		}
	}

	c.ID, err = generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := db.InsertCustomRoute(ctx, database, c); err != nil {
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewRouteAlreadyExists(ownerID, c.RouteKey)
		}
		return nil, err
	}

	return &CreateCustomRouteOutput{
		ID:       c.ID,
		RouteKey: c.RouteKey,
		Route:    route.FromCustomRoute(*c),
	}, nil
}

// ListCustomRoutesInput contains parameters for the ListCustomRoutes operation.
type ListCustomRoutesInput struct {
	OwnerID string // required
}

// ListCustomRoutesOutput contains the result of the ListCustomRoutes operation.
type ListCustomRoutesOutput struct {
	Items []route.CustomRoute `json:"items"`
	Total int                 `json:"total"`
}

// ListCustomRoutes returns an owner's ATO routes, oldest first.
func ListCustomRoutes(ctx context.Context, database *sql.DB, input ListCustomRoutesInput) (*ListCustomRoutesOutput, error) {
	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return nil, errors.NewInvalidRequest("owner_id is required")
	}

	items, err := db.ListCustomRoutesByOwner(ctx, database, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []route.CustomRoute{}
	}

	return &ListCustomRoutesOutput{Items: items, Total: len(items)}, nil
}

// DeleteCustomRouteInput contains parameters for the DeleteCustomRoute operation.
type DeleteCustomRouteInput struct {
	OwnerID string // required
	ID      string // required
}

// DeleteCustomRouteOutput contains the result of the DeleteCustomRoute operation.
type DeleteCustomRouteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DeleteCustomRoute removes one of the owner's ATO routes.
func DeleteCustomRoute(ctx context.Context, database *sql.DB, input DeleteCustomRouteInput) (*DeleteCustomRouteOutput, error) {
	ownerID := strings.TrimSpace(input.OwnerID)
	id := strings.TrimSpace(input.ID)
	if ownerID == "" || id == "" {
		return nil, errors.NewInvalidRequest("owner_id and id are required")
	}

	if err := db.DeleteCustomRoute(ctx, database, ownerID, id); err != nil {
		return nil, err
	}

	return &DeleteCustomRouteOutput{Deleted: true, ID: id}, nil
}
