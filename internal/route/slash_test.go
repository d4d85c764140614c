package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSlashCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{
			name:  "route with content",
			input: "/namc brainstorm a scene",
			want:  Command{Route: "/namc/", Content: "brainstorm a scene"},
		},
		{
			name:  "trailing slash on token",
			input: "/NAMC/ what is Ghost Girl",
			want:  Command{Route: "/namc/", Content: "what is Ghost Girl"},
		},
		{
			name:  "route only",
			input: "  /Namc  ",
			want:  Command{Route: "/namc/"},
		},
		{
			name:  "help",
			input: "/help",
			want:  Command{IsHelp: true},
		},
		{
			name:  "help is case-insensitive and keeps content",
			input: "/HELP routes",
			want:  Command{Content: "routes", IsHelp: true},
		},
		{
			name:  "plain text",
			input: "plain text, no slash",
			want:  Command{Content: "plain text, no slash"},
		},
		{
			name:  "plain text is trimmed",
			input: "   hello there  ",
			want:  Command{Content: "hello there"},
		},
		{
			name:  "lone slash is plain",
			input: "/",
			want:  Command{Content: "/"},
		},
		{
			name:  "nested path is malformed",
			input: "/a/b rest",
			want:  Command{Content: "/a/b rest"},
		},
		{
			name:  "token that normalizes to nothing defaults to hub",
			input: "/!!! hello",
			want:  Command{Route: DefaultRoute, Content: "hello"},
		},
		{
			name:  "multiline content",
			input: "/namc line one\nline two",
			want:  Command{Route: "/namc/", Content: "line one\nline two"},
		},
		{
			name:  "empty input",
			input: "",
			want:  Command{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSlashCommand(tt.input)
			if got != tt.want {
				t.Errorf("ParseSlashCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveActiveRoute(t *testing.T) {
	require.Equal(t, "/namc/", ResolveActiveRoute("/hub", "/namc/"))
	require.Equal(t, "/namc/", ResolveActiveRoute("/namc/", ""))
	require.Equal(t, DefaultRoute, ResolveActiveRoute("", ""))
}

// TestActiveRoute_CarriedAcrossTurns walks a short conversation: a slash
// command switches the route, a slash-less follow-up keeps it.
func TestActiveRoute_CarriedAcrossTurns(t *testing.T) {
	active := DefaultRoute

	turn := ParseSlashCommand("/namc what is Ghost Girl")
	active = ResolveActiveRoute(active, turn.Route)
	require.Equal(t, "/namc/", active)
	require.Equal(t, "what is Ghost Girl", turn.Content)

	turn = ParseSlashCommand("brainstorm a scene")
	active = ResolveActiveRoute(active, turn.Route)
	require.Equal(t, "/namc/", active)
	require.False(t, turn.HasRoute())
}
