package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

func TestRegisterRoute_KeepsRawSlashAndDefaultsLabel(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	out, err := RegisterRoute(ctx, database, cfg, RegisterRouteInput{Slash: " /My Car/ "})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	require.Equal(t, "/My Car/", out.Route.Slash)
	require.Equal(t, "My Car", out.Route.Label)
	require.Equal(t, "/MyCar/", out.Route.Route)
	require.Equal(t, "/mycar/", out.Route.Key())
	require.Equal(t, route.KindOfficial, out.Route.Kind)

	// Round-trips through storage unchanged.
	list, err := ListRegistry(ctx, database, cfg)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, "/My Car/", list.Items[0].Slash)
}

func TestRegisterRoute_UpdatesExistingKey(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	first, err := RegisterRoute(ctx, database, cfg, RegisterRouteInput{Slash: "namc", Label: "old"})
	require.NoError(t, err)

	second, err := RegisterRoute(ctx, database, cfg, RegisterRouteInput{Slash: "NAMC", Label: "Not A Media Company"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	list, err := ListRegistry(ctx, database, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, "/NAMC/", list.Items[0].Route)
	require.Equal(t, "Not A Media Company", list.Items[0].Label)
}

func TestRegisterRoute_RejectsEmpty(t *testing.T) {
	database, cfg := setupOps(t)

	for _, slash := range []string{"", "   ", "///", "!!!"} {
		_, err := RegisterRoute(context.Background(), database, cfg, RegisterRouteInput{Slash: slash})
		require.True(t, errors.Is(err, errors.ErrInvalidRequest), "slash %q: %v", slash, err)
	}
}

func TestListRegistry_FoundersFlags(t *testing.T) {
	database, cfg := setupOps(t)
	registerAll(t, database, cfg, "NAMC", "MyCarMindATO/Driver", "MyCarMindATO/Explorer")

	list, err := ListRegistry(context.Background(), database, cfg)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)

	flags := map[string]bool{}
	for _, s := range list.Items {
		flags[s.Slash] = s.FoundersOnly
	}
	require.False(t, flags["NAMC"])
	require.False(t, flags["MyCarMindATO/Driver"])
	require.True(t, flags["MyCarMindATO/Explorer"])
}

func TestListRegistry_ConfiguredFreeRoutes(t *testing.T) {
	database, cfg := setupOps(t)
	cfg.FreeSlashRoutes = []string{"mycarmindato/explorer"}
	registerAll(t, database, cfg, "MyCarMindATO/Explorer")

	list, err := ListRegistry(context.Background(), database, cfg)
	require.NoError(t, err)
	require.False(t, list.Items[0].FoundersOnly)
	require.True(t, list.Items[0].IsFreeRoute)
}

func TestRemoveRoute(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()
	registerAll(t, database, cfg, "NAMC")

	out, err := RemoveRoute(ctx, database, RemoveRouteInput{Slash: "/namc/"})
	require.NoError(t, err)
	require.True(t, out.Removed)
	require.Equal(t, "/namc/", out.Route)

	_, err = RemoveRoute(ctx, database, RemoveRouteInput{Slash: "NAMC"})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = RemoveRoute(ctx, database, RemoveRouteInput{Slash: " "})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

const seedYAML = `
routes:
  - label: Brooks AI HUB
    slash: BrooksAIHub
  - label: Not A Media Company
    slash: NAMC
  - label: Driver
    slash: MyCarMindATO/Driver
`

func TestSeedRegistry_FromReader(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	out, err := SeedRegistry(ctx, database, SeedRegistryInput{Reader: strings.NewReader(seedYAML)})
	require.NoError(t, err)
	require.Equal(t, 3, out.Upserted)
	require.Equal(t, []string{"/brooksaihub/", "/namc/", "/mycarmindato/driver/"}, out.Routes)

	// Seeding again updates rather than duplicates.
	_, err = SeedRegistry(ctx, database, SeedRegistryInput{Reader: strings.NewReader(seedYAML)})
	require.NoError(t, err)

	list, err := ListRegistry(ctx, database, cfg)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
}

func TestSeedRegistry_InvalidEntryWritesNothing(t *testing.T) {
	database, cfg := setupOps(t)
	ctx := context.Background()

	bad := "routes:\n  - label: ok\n    slash: NAMC\n  - label: bad\n    slash: '!!!'\n"
	_, err := SeedRegistry(ctx, database, SeedRegistryInput{Reader: strings.NewReader(bad)})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)

	list, err := ListRegistry(ctx, database, cfg)
	require.NoError(t, err)
	require.Zero(t, list.Total)
}

func TestSeedRegistry_UnknownFieldRejected(t *testing.T) {
	database, _ := setupOps(t)

	_, err := SeedRegistry(context.Background(), database, SeedRegistryInput{
		Reader: strings.NewReader("routes:\n  - slug: NAMC\n"),
	})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestSeedRegistry_MissingFile(t *testing.T) {
	database, _ := setupOps(t)

	_, err := SeedRegistry(context.Background(), database, SeedRegistryInput{Path: "/nonexistent/seed.yaml"})
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = SeedRegistry(context.Background(), database, SeedRegistryInput{})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestParseSeed_Empty(t *testing.T) {
	seed, err := ParseSeed(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, seed.Routes)
}
