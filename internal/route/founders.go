package route

import "strings"

// FreeSlashRoutes lists the sub-routes that stay open to every user.
var FreeSlashRoutes = []string{
	"MyCarMindATO/Driver",
	"MyCarMindATO/Traveler",
}

// Gate answers founders-access questions for slash routes.
// The zero value and a nil *Gate use FreeSlashRoutes only.
type Gate struct {
	free map[string]bool
}

// NewGate builds a gate from FreeSlashRoutes plus any extra free routes.
func NewGate(extra ...string) *Gate {
	g := &Gate{free: make(map[string]bool, len(FreeSlashRoutes)+len(extra))}
	for _, r := range FreeSlashRoutes {
		g.free[NormalizeKey(r)] = true
	}
	for _, r := range extra {
		if strings.TrimSpace(r) == "" {
			continue
		}
		g.free[NormalizeKey(r)] = true
	}
	return g
}

var defaultGate = NewGate()

// RequiresFounders reports whether a slash route is gated to founders.
// Top-level routes are never gated; sub-routes are gated unless allowlisted.
func (g *Gate) RequiresFounders(slash string) bool {
	if !strings.Contains(SanitizeSegment(slash), "/") {
		return false
	}
	free := defaultGate.free
	if g != nil && g.free != nil {
		free = g.free
	}
	return !free[NormalizeKey(slash)]
}

// RequiresFoundersForSlashRoute checks a route against the built-in allowlist.
func RequiresFoundersForSlashRoute(slash string) bool {
	return defaultGate.RequiresFounders(slash)
}
