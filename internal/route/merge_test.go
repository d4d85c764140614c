package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func official(id, label, slash string) Suggestion {
	return FromRegistryEntry(RegistryEntry{ID: id, Label: label, Slash: slash}, nil)
}

func custom(id, name string, r *string) Suggestion {
	return FromCustomRoute(CustomRoute{ID: id, OwnerID: "u1", Name: name, Route: r})
}

func TestMergeRoutes_OfficialWins(t *testing.T) {
	merged := MergeRoutes(
		[]Suggestion{official("o1", "NAMC", "NAMC")},
		[]Suggestion{custom("c1", "my namc", strPtr("namc")), custom("c2", "Scout", nil)},
	)

	require.Len(t, merged, 2)
	require.Equal(t, KindOfficial, merged[0].Kind)
	require.Equal(t, "o1", merged[0].ID)
	require.Equal(t, KindCustom, merged[1].Kind)
	require.Equal(t, "c2", merged[1].ID)
}

func TestMergeRoutes_FirstCustomWins(t *testing.T) {
	merged := MergeRoutes(nil, []Suggestion{
		custom("c1", "Scout", nil),
		custom("c2", "other", strPtr("/SCOUT/")),
	})

	require.Len(t, merged, 1)
	require.Equal(t, "c1", merged[0].ID)
}

func TestMergeRoutes_OrderIndependentOfInput(t *testing.T) {
	// Custom listed before official in the source data still loses.
	customs := []Suggestion{custom("c1", "namc", nil)}
	officials := []Suggestion{official("o1", "NAMC", "NAMC")}

	merged := MergeRoutes(officials, customs)
	require.Len(t, merged, 1)
	require.Equal(t, KindOfficial, merged[0].Kind)
}

func TestFilterByPrefix_PlainArm(t *testing.T) {
	items := []Suggestion{
		official("o1", "NAMC", "NAMC"),
		official("o2", "Hub", "Brooks AI HUB"),
		official("o3", "Driver", "MyCarMindATO/Driver"),
	}

	got := FilterByPrefix(items, "na")
	require.Len(t, got, 1)
	require.Equal(t, "o1", got[0].ID)

	// "Brooks AI HUB" keys to /brooksaihub/ but is still found by its raw text.
	got = FilterByPrefix(items, "brooks")
	require.Len(t, got, 1)
	require.Equal(t, "o2", got[0].ID)

	got = FilterByPrefix(items, "Brooks AI")
	require.Len(t, got, 1)
	require.Equal(t, "o2", got[0].ID)
}

func TestFilterByPrefix_NormalizedArm(t *testing.T) {
	items := []Suggestion{
		official("o2", "Hub", "Brooks AI HUB"),
		official("o3", "Driver", "MyCarMindATO/Driver"),
		official("o4", "Trucker", "MyCarMindATO/Trucker"),
		official("o5", "Other", "MyCarMindATOX"),
	}

	// Typed without the spaces: only the normalized arm can see it.
	got := FilterByPrefix(items, "/BrooksAIHub/")
	require.Len(t, got, 1)
	require.Equal(t, "o2", got[0].ID)

	// Segment prefix matches sub-routes; the plain arm also catches the longer sibling.
	got = FilterByPrefix(items, "/mycarmindato/")
	ids := []string{}
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	require.ElementsMatch(t, []string{"o3", "o4", "o5"}, ids)
}

func TestFilterByPrefix_Empty(t *testing.T) {
	items := []Suggestion{official("o1", "NAMC", "NAMC"), custom("c1", "Scout", nil)}

	require.Len(t, FilterByPrefix(items, ""), 2)
	require.Len(t, FilterByPrefix(items, "  / "), 2)
}

func TestFilterByPrefix_GarbageMatchesNothing(t *testing.T) {
	items := []Suggestion{official("o1", "NAMC", "NAMC")}
	require.Empty(t, FilterByPrefix(items, "!!!"))
}

func TestMergeThenFilter_RegistryPrecedence(t *testing.T) {
	merged := MergeRoutes(
		[]Suggestion{official("o1", "NAMC", "NAMC")},
		[]Suggestion{custom("c1", "namc", nil)},
	)

	got := FilterByPrefix(merged, "na")
	require.Len(t, got, 1)
	require.Equal(t, KindOfficial, got[0].Kind)
	require.Equal(t, "/NAMC/", got[0].Route)
}

func TestSortSuggestions(t *testing.T) {
	items := []Suggestion{
		custom("c1", "alpha", nil),
		official("o2", "Zed", "zed"),
		official("o1", "Bee", "Bee"),
	}

	SortSuggestions(items)

	require.Equal(t, "o1", items[0].ID)
	require.Equal(t, "o2", items[1].ID)
	require.Equal(t, "c1", items[2].ID)
}

func TestFromRegistryEntry_UsesRegistryCasing(t *testing.T) {
	s := FromRegistryEntry(RegistryEntry{ID: "o1", Label: "Car", Slash: "MyCarMindATO/Trucker"}, nil)

	require.Equal(t, "/MyCarMindATO/Trucker/", s.Route)
	require.Equal(t, KindOfficial, s.Kind)
	require.True(t, s.FoundersOnly)
	require.False(t, s.IsFreeRoute)
	require.Empty(t, s.AtoID)
}

func TestFromCustomRoute_FallsBackToName(t *testing.T) {
	s := FromCustomRoute(CustomRoute{ID: "c1", OwnerID: "u1", Name: "Story Lab"})

	require.Equal(t, "/StoryLab/", s.Route)
	require.Equal(t, "c1", s.AtoID)
	require.Equal(t, KindCustom, s.Kind)

	s = FromCustomRoute(CustomRoute{ID: "c2", OwnerID: "u1", Name: "Story Lab", Route: strPtr("/lab/")})
	require.Equal(t, "/lab/", s.Route)
}
