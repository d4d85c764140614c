package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/usage"
)

// TopRoutesInput contains parameters for the TopRoutes operation.
type TopRoutesInput struct {
	OwnerID string // required
	Limit   int    // default: 10, max: 100
}

// TopRoutesOutput contains the result of the TopRoutes operation.
type TopRoutesOutput struct {
	Items []usage.Ranked `json:"items"`
}

// TopRoutes returns the owner's most used routes among those still routable.
// Routes removed from the registry or deleted by the owner drop out.
func TopRoutes(ctx context.Context, database *sql.DB, cfg *config.Config, input TopRoutesInput) (*TopRoutesOutput, error) {
	ownerID := strings.TrimSpace(input.OwnerID)
	if ownerID == "" {
		return nil, errors.NewInvalidRequest("owner_id is required")
	}
	limit := clampLimit(input.Limit, DefaultTopLimit, MaxTopLimit)

	all, err := routable(ctx, database, cfg, ownerID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for _, s := range all {
		keys = append(keys, s.Key())
	}

	ranked, err := usage.MostUsed(ctx, db.NewUsageStore(database, ownerID), keys, limit)
	if err != nil {
		return nil, err
	}

	return &TopRoutesOutput{Items: ranked}, nil
}
