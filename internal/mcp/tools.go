package mcp

import "github.com/mark3labs/mcp-go/mcp"

var routeParseToolDef = mcp.NewTool("route_parse",
	mcp.WithDescription("Parse one line of chat input into a slash command. "+
		"Returns the normalized route key (empty when the input carries no route), the remaining content, and whether /help was requested."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Raw user input, e.g. '/namc what is Ghost Girl'"),
	),
)

var routeResolveToolDef = mcp.NewTool("route_resolve",
	mcp.WithDescription("Resolve a typed route against the official registry and the owner's custom routes. "+
		"Status is 'resolved', 'redirected' (external URL) or 'unknown' with prefix suggestions."),
	mcp.WithString("route",
		mcp.Required(),
		mcp.Description("Route in any casing, with or without slashes"),
	),
	mcp.WithString("owner_id",
		mcp.Description("Owner whose custom routes are also searched"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum suggestions on a miss (default: 20, max: 100)"),
	),
)

var routeSuggestToolDef = mcp.NewTool("route_suggest",
	mcp.WithDescription("List routes matching a typed prefix. Official routes come first and shadow custom routes with the same key."),
	mcp.WithString("prefix",
		mcp.Description("Typed prefix (empty lists everything)"),
	),
	mcp.WithString("owner_id",
		mcp.Description("Owner whose custom routes are included"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum results (default: 20, max: 100)"),
	),
	mcp.WithBoolean("by_usage",
		mcp.Description("Order by the owner's most used routes first"),
	),
)

var routeRegisterToolDef = mcp.NewTool("route_register",
	mcp.WithDescription("Add an official route to the registry, or update the label of the route with the same normalized key."),
	mcp.WithString("slash",
		mcp.Required(),
		mcp.Description("Route as it should be displayed, e.g. 'NAMC' or 'MyCarMindATO/Driver'"),
	),
	mcp.WithString("label",
		mcp.Description("Human-readable name (default: the slash)"),
	),
)

var routeListToolDef = mcp.NewTool("route_list",
	mcp.WithDescription("List every official route with its founders-access flags."),
)

var routeRemoveToolDef = mcp.NewTool("route_remove",
	mcp.WithDescription("Remove an official route from the registry."),
	mcp.WithString("slash",
		mcp.Required(),
		mcp.Description("Route in any casing"),
	),
)

var atoCreateToolDef = mcp.NewTool("ato_create",
	mcp.WithDescription("Create a custom ATO route for an owner. Fails with ROUTE_RESERVED when an official route owns the key, "+
		"ROUTE_ALREADY_EXISTS when the owner already has it, and LIMIT_EXCEEDED past the per-owner cap."),
	mcp.WithString("owner_id",
		mcp.Required(),
		mcp.Description("Owner of the route"),
	),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("ATO name; used as the route when none is given"),
	),
	mcp.WithString("route",
		mcp.Description("Route to address the ATO by, or an http(s) URL to redirect to"),
	),
)

var atoListToolDef = mcp.NewTool("ato_list",
	mcp.WithDescription("List an owner's custom ATO routes, oldest first."),
	mcp.WithString("owner_id",
		mcp.Required(),
		mcp.Description("Owner of the routes"),
	),
)

var atoDeleteToolDef = mcp.NewTool("ato_delete",
	mcp.WithDescription("Delete one of an owner's custom ATO routes."),
	mcp.WithString("owner_id",
		mcp.Required(),
		mcp.Description("Owner of the route"),
	),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("ATO ID (ULID)"),
	),
)

var chatSendToolDef = mcp.NewTool("chat_send",
	mcp.WithDescription("Process one chat turn. A known slash route switches the chat's active route; "+
		"plain messages keep the previous route; unknown routes return suggestions and change nothing."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("User input"),
	),
	mcp.WithString("chat_id",
		mcp.Description("Chat to continue (default: start a new chat)"),
	),
	mcp.WithString("owner_id",
		mcp.Description("Owner of the chat; must match for chats started with an owner"),
	),
)

var chatActiveRouteToolDef = mcp.NewTool("chat_active_route",
	mcp.WithDescription("Get a chat's active route, or restore it when 'route' is given (empty string resets to the default route)."),
	mcp.WithString("chat_id",
		mcp.Required(),
		mcp.Description("Chat ID"),
	),
	mcp.WithString("owner_id",
		mcp.Description("Owner of the chat; must match for chats started with an owner"),
	),
	mcp.WithString("route",
		mcp.Description("Route to restore"),
	),
)

var usageTopToolDef = mcp.NewTool("usage_top",
	mcp.WithDescription("List an owner's most used routes."),
	mcp.WithString("owner_id",
		mcp.Required(),
		mcp.Description("Owner whose usage is ranked"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum results (default: 10, max: 100)"),
	),
)
