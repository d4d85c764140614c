package route

import (
	"regexp"
	"strings"
)

// DefaultRoute is the active route of a chat that has never switched.
const DefaultRoute = "/hub"

// slashCommandRegex matches "/token", "/token/", optionally followed by
// whitespace and free text. The token contains no slashes or whitespace.
var slashCommandRegex = regexp.MustCompile(`(?s)^/([^/\s]+)/?(?:\s+(.*))?$`)

// Command is one parsed line of chat input.
type Command struct {
	// Route is the normalized route key, empty when the input carries no routing intent
	Route string `json:"route,omitempty"`

	// Content is the free text after the route token
	Content string `json:"content"`

	// IsHelp is set for "/help"
	IsHelp bool `json:"is_help"`
}

// HasRoute reports whether the command switches routes.
func (c Command) HasRoute() bool {
	return c.Route != ""
}

// ParseSlashCommand turns one line of raw input into a Command. It never fails:
// input that is not a well-formed slash command is returned as plain content.
func ParseSlashCommand(input string) Command {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{Content: trimmed}
	}

	m := slashCommandRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Command{Content: trimmed}
	}

	token, content := m[1], strings.TrimSpace(m[2])
	if strings.ToLower(token) == "help" {
		return Command{Content: content, IsHelp: true}
	}

	key := NormalizeKey(token)
	if key == "/" {
		key = DefaultRoute
	}
	return Command{Route: key, Content: content}
}

// ResolveActiveRoute returns parsed when the turn switched routes, otherwise
// the current route. A chat with no route yet falls back to DefaultRoute.
func ResolveActiveRoute(current, parsed string) string {
	if parsed != "" {
		return parsed
	}
	if current != "" {
		return current
	}
	return DefaultRoute
}
