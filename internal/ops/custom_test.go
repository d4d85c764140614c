package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

func TestCreateCustomRoute_NameIsDefaultRoute(t *testing.T) {
	database, cfg := setupOps(t)

	out, err := CreateCustomRoute(context.Background(), database, cfg, CreateCustomRouteInput{
		OwnerID: "u1",
		Name:    "Story Lab",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	require.Equal(t, "/storylab/", out.RouteKey)
	require.Equal(t, "/StoryLab/", out.Route.Route)
	require.Equal(t, route.KindCustom, out.Route.Kind)
	require.Equal(t, out.ID, out.Route.AtoID)
}

func TestCreateCustomRoute_ExplicitRoute(t *testing.T) {
	database, cfg := setupOps(t)

	out, err := CreateCustomRoute(context.Background(), database, cfg, CreateCustomRouteInput{
		OwnerID: "u1",
		Name:    "Scout",
		Route:   stringPtr(" /Scouting/ "),
	})
	require.NoError(t, err)
	require.Equal(t, "/scouting/", out.RouteKey)
	require.Equal(t, "Scout", out.Route.Label)
}

func TestCreateCustomRoute_RedirectAddressedByName(t *testing.T) {
	database, cfg := setupOps(t)

	out, err := CreateCustomRoute(context.Background(), database, cfg, CreateCustomRouteInput{
		OwnerID: "u1",
		Name:    "Docs",
		Route:   stringPtr("https://docs.example.com/start"),
	})
	require.NoError(t, err)
	require.Equal(t, "/docs/", out.RouteKey)
	require.Equal(t, "https://docs.example.com/start", out.Route.RedirectURL)
}

func TestCreateCustomRoute_Validation(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCustomRouteInput
	}{
		{"missing owner", CreateCustomRouteInput{Name: "x"}},
		{"missing name", CreateCustomRouteInput{OwnerID: "u1", Name: "  "}},
		{"unusable route", CreateCustomRouteInput{OwnerID: "u1", Name: "x", Route: stringPtr("???")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateCustomRoute(ctx, database, cfg, tt.input)
			require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
		})
	}
}

func TestCreateCustomRoute_ReservedByRegistry(t *testing.T) {
	database, cfg := setupOps(t)
	registerAll(t, database, cfg, "NAMC")

	_, err := CreateCustomRoute(context.Background(), database, cfg, CreateCustomRouteInput{
		OwnerID: "u1",
		Name:    "My NAMC",
		Route:   stringPtr("namc"),
	})
	require.True(t, errors.Is(err, errors.ErrRouteReserved), "got %v", err)
}

func TestCreateCustomRoute_DuplicatePerOwner(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	_, err := CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: "Scout"})
	require.NoError(t, err)

	_, err = CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: "other", Route: stringPtr("/SCOUT/")})
	require.True(t, errors.Is(err, errors.ErrRouteAlreadyExists), "got %v", err)

	// Another owner may reuse the key.
	_, err = CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u2", Name: "Scout"})
	require.NoError(t, err)
}

func TestCreateCustomRoute_LimitExceeded(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()
	cfg.MaxCustomRoutes = 2

	for _, name := range []string{"a", "b"} {
		_, err := CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: name})
		require.NoError(t, err)
	}

	_, err := CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: "c"})
	require.True(t, errors.Is(err, errors.ErrLimitExceeded), "got %v", err)

	cfg.MaxCustomRoutes = 0
	_, err = CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: "c"})
	require.NoError(t, err)
}

func TestListAndDeleteCustomRoutes(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	created, err := CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u1", Name: "Scout"})
	require.NoError(t, err)
	_, err = CreateCustomRoute(ctx, database, cfg, CreateCustomRouteInput{OwnerID: "u2", Name: "Other"})
	require.NoError(t, err)

	list, err := ListCustomRoutes(ctx, database, ListCustomRoutesInput{OwnerID: "u1"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, "Scout", list.Items[0].Name)

	// Another owner cannot delete it.
	_, err = DeleteCustomRoute(ctx, database, DeleteCustomRouteInput{OwnerID: "u2", ID: created.ID})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	del, err := DeleteCustomRoute(ctx, database, DeleteCustomRouteInput{OwnerID: "u1", ID: created.ID})
	require.NoError(t, err)
	require.True(t, del.Deleted)

	list, err = ListCustomRoutes(ctx, database, ListCustomRoutesInput{OwnerID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, list.Items)
	require.Zero(t, list.Total)

	_, err = ListCustomRoutes(ctx, database, ListCustomRoutesInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
