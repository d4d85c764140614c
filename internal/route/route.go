// Package route holds the slash-route core: key normalization, slash command
// parsing, registry/custom route merging, prefix suggestion filtering and the
// founders-access gate. Nothing in this package performs I/O.
package route

import "strings"

// Kind discriminates where a suggestion came from.
type Kind string

const (
	KindOfficial Kind = "official" // built-in registry route
	KindCustom   Kind = "custom"   // user-authored ATO route
)

// RegistryEntry is an official, built-in application route.
type RegistryEntry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string `json:"id"`

	// Label is the human-readable name shown in menus
	Label string `json:"label"`

	// Slash is the route as registered, casing preserved (e.g. "NAMC", "MyCarMindATO/Driver")
	Slash string `json:"slash"`

	// SlashNorm is NormalizeKey(Slash), unique within the registry
	SlashNorm string `json:"slash_norm"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// CustomRoute is a user-authored ("unofficial") ATO route.
type CustomRoute struct {
	// ID is a ULID that uniquely identifies this ATO
	ID string `json:"id"`

	// OwnerID is the user that created the ATO; custom routes never leak across owners
	OwnerID string `json:"owner_id"`

	// Name is the ATO name, used as the route source when Route is nil
	Name string `json:"name"`

	// Route is the raw route the owner chose (nullable)
	Route *string `json:"route,omitempty"`

	// RouteKey is NormalizeKey(Source()), unique per owner
	RouteKey string `json:"route_key"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Source returns the string a custom route is addressed and displayed by:
// its route when set, otherwise its name. A route that is an external URL is
// a redirect target, so the name addresses it instead.
func (c CustomRoute) Source() string {
	if c.Route != nil && strings.TrimSpace(*c.Route) != "" && !IsExternalURL(*c.Route) {
		return *c.Route
	}
	return c.Name
}

// RedirectURL returns the external URL the route points at, if any.
func (c CustomRoute) RedirectURL() string {
	if c.Route != nil && IsExternalURL(*c.Route) {
		return strings.TrimSpace(*c.Route)
	}
	return ""
}

// Suggestion is the unified result handed to callers for both official and
// custom routes.
type Suggestion struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Slash        string `json:"slash"`
	Route        string `json:"route"` // formatted display path
	Kind         Kind   `json:"kind"`
	AtoID        string `json:"ato_id,omitempty"`
	RedirectURL  string `json:"redirect_url,omitempty"`
	FoundersOnly bool   `json:"founders_only,omitempty"`
	IsFreeRoute  bool   `json:"is_free_route,omitempty"`
}

// Key returns the normalized key the suggestion is matched by.
func (s Suggestion) Key() string {
	return NormalizeKey(s.Slash)
}

// FromRegistryEntry maps an official registry row to a suggestion. The display
// route always comes from the registry's own slash, never from user input.
func FromRegistryEntry(e RegistryEntry, gate *Gate) Suggestion {
	foundersOnly := gate.RequiresFounders(e.Slash)
	return Suggestion{
		ID:           e.ID,
		Label:        e.Label,
		Slash:        e.Slash,
		Route:        FormatPath(e.Slash),
		Kind:         KindOfficial,
		FoundersOnly: foundersOnly,
		IsFreeRoute:  !foundersOnly,
	}
}

// FromCustomRoute maps a custom ATO row to a suggestion.
func FromCustomRoute(c CustomRoute) Suggestion {
	source := c.Source()
	return Suggestion{
		ID:          c.ID,
		Label:       c.Name,
		Slash:       source,
		Route:       FormatPath(source),
		Kind:        KindCustom,
		AtoID:       c.ID,
		RedirectURL: c.RedirectURL(),
	}
}

// Session is the per-chat routing state. ActiveRoute survives turns that
// carry no slash command.
type Session struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	ActiveRoute string `json:"active_route"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
