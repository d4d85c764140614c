// Package ops implements the slashhub operations shared by the CLI, the MCP
// tool server and the HTTP API. Each operation takes an Input struct and
// returns an Output struct or a *errors.HubError.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Result limits
const (
	DefaultSuggestLimit = 20
	MaxSuggestLimit     = 100
	DefaultTopLimit     = 10
	MaxTopLimit         = 100
)

// Status reports how a route lookup or chat message was handled.
type Status string

const (
	StatusResolved   Status = "resolved"   // route found, active route switched
	StatusRedirected Status = "redirected" // route points at an external URL
	StatusUnknown    Status = "unknown"    // no route matched; suggestions returned
	StatusHelp       Status = "help"       // help requested; suggestions returned
	StatusMessage    Status = "message"    // plain message, active route carried
)

// generateULID creates a new ULID string.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// cleanOptionalString trims s and returns nil when nothing is left.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// clampLimit applies a default and an upper bound to a caller-supplied limit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}
