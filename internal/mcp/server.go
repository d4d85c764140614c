package mcp

import (
	"database/sql"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brooksai/slashhub/internal/config"
)

// KnownTypes lists all valid type names.
var KnownTypes = []string{"route", "ato", "chat", "usage"}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"route_parse": {
		def:     routeParseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleParse },
	},
	"route_resolve": {
		def:     routeResolveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleResolve },
	},
	"route_suggest": {
		def:     routeSuggestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSuggest },
	},
	"route_register": {
		def:     routeRegisterToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRegister },
	},
	"route_list": {
		def:     routeListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListRegistry },
	},
	"route_remove": {
		def:     routeRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRemove },
	},
	"ato_create": {
		def:     atoCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreateATO },
	},
	"ato_list": {
		def:     atoListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListATOs },
	},
	"ato_delete": {
		def:     atoDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeleteATO },
	},
	"chat_send": {
		def:     chatSendToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSend },
	},
	"chat_active_route": {
		def:     chatActiveRouteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleActiveRoute },
	},
	"usage_top": {
		def:     usageTopToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTop },
	},
}

// AllToolNames returns a sorted list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns a list of unknown type names from the given list.
func ValidateDisabledTypes(names []string) []string {
	known := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		known[t] = true
	}

	unknown := make([]string, 0)
	for _, name := range names {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// GetTypeForTool extracts the type name from a tool name.
// Tool names follow the pattern "type_action" (e.g., "route_resolve" → "route").
func GetTypeForTool(toolName string) string {
	if idx := strings.Index(toolName, "_"); idx > 0 {
		return toolName[:idx]
	}
	return ""
}

// ExpandTypesToTools returns all tool names belonging to the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}

	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}

	tools := make([]string, 0)
	for name := range toolRegistry {
		if typeSet[GetTypeForTool(name)] {
			tools = append(tools, name)
		}
	}
	return tools
}

// NewServer creates a new MCP server with slashhub tools registered.
// Tools listed in cfg.DisabledTools or belonging to cfg.DisabledTypes
// are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"slashhub",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	for _, name := range ValidateDisabledTypes(cfg.DisabledTypes) {
		log.Printf("WARNING: unknown type in disabled_types: %q", name)
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("WARNING: unknown tool in disabled_tools: %q", name)
	}

	// Expand types first, then add individual tools
	disabled := make(map[string]bool)
	for _, tool := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[tool] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}
