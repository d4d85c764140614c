package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/ops"
	"github.com/brooksai/slashhub/internal/route"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// ParseRequest represents the arguments for route_parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ResolveRequest represents the arguments for route_resolve.
type ResolveRequest struct {
	Route   string `json:"route"`
	OwnerID string `json:"owner_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// SuggestRequest represents the arguments for route_suggest.
type SuggestRequest struct {
	Prefix  string `json:"prefix,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	ByUsage bool   `json:"by_usage,omitempty"`
}

// RegisterRequest represents the arguments for route_register.
type RegisterRequest struct {
	Slash string `json:"slash"`
	Label string `json:"label,omitempty"`
}

// RemoveRequest represents the arguments for route_remove.
type RemoveRequest struct {
	Slash string `json:"slash"`
}

// CreateATORequest represents the arguments for ato_create.
type CreateATORequest struct {
	OwnerID string  `json:"owner_id"`
	Name    string  `json:"name"`
	Route   *string `json:"route,omitempty"`
}

// ListATOsRequest represents the arguments for ato_list.
type ListATOsRequest struct {
	OwnerID string `json:"owner_id"`
}

// DeleteATORequest represents the arguments for ato_delete.
type DeleteATORequest struct {
	OwnerID string `json:"owner_id"`
	ID      string `json:"id"`
}

// SendRequest represents the arguments for chat_send.
type SendRequest struct {
	ChatID  string `json:"chat_id,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Text    string `json:"text"`
}

// ActiveRouteRequest represents the arguments for chat_active_route.
// A present route (even "") restores; an absent one reads.
type ActiveRouteRequest struct {
	ChatID  string  `json:"chat_id"`
	OwnerID string  `json:"owner_id,omitempty"`
	Route   *string `json:"route,omitempty"`
}

// TopRequest represents the arguments for usage_top.
type TopRequest struct {
	OwnerID string `json:"owner_id"`
	Limit   int    `json:"limit,omitempty"`
}

// Handler implementations

// HandleParse handles the route_parse tool call.
func (h *Handlers) HandleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ParseRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return successResult(route.ParseSlashCommand(input.Text))
}

// HandleResolve handles the route_resolve tool call.
func (h *Handlers) HandleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResolveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Lookup(ctx, h.db, h.cfg, ops.LookupInput{
		Route:   input.Route,
		OwnerID: input.OwnerID,
		Limit:   input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSuggest handles the route_suggest tool call.
func (h *Handlers) HandleSuggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SuggestRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Suggest(ctx, h.db, h.cfg, ops.SuggestInput{
		Prefix:  input.Prefix,
		OwnerID: input.OwnerID,
		Limit:   input.Limit,
		ByUsage: input.ByUsage,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRegister handles the route_register tool call.
func (h *Handlers) HandleRegister(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RegisterRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RegisterRoute(ctx, h.db, h.cfg, ops.RegisterRouteInput{
		Slash: input.Slash,
		Label: input.Label,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleListRegistry handles the route_list tool call.
func (h *Handlers) HandleListRegistry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListRegistry(ctx, h.db, h.cfg)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRemove handles the route_remove tool call.
func (h *Handlers) HandleRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveRoute(ctx, h.db, ops.RemoveRouteInput{Slash: input.Slash})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCreateATO handles the ato_create tool call.
func (h *Handlers) HandleCreateATO(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateATORequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateCustomRoute(ctx, h.db, h.cfg, ops.CreateCustomRouteInput{
		OwnerID: input.OwnerID,
		Name:    input.Name,
		Route:   input.Route,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleListATOs handles the ato_list tool call.
func (h *Handlers) HandleListATOs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListATOsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCustomRoutes(ctx, h.db, ops.ListCustomRoutesInput{OwnerID: input.OwnerID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleDeleteATO handles the ato_delete tool call.
func (h *Handlers) HandleDeleteATO(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteATORequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteCustomRoute(ctx, h.db, ops.DeleteCustomRouteInput{
		OwnerID: input.OwnerID,
		ID:      input.ID,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSend handles the chat_send tool call.
func (h *Handlers) HandleSend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SendRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Send(ctx, h.db, h.cfg, ops.SendInput{
		ChatID:  input.ChatID,
		OwnerID: input.OwnerID,
		Text:    input.Text,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleActiveRoute handles the chat_active_route tool call.
func (h *Handlers) HandleActiveRoute(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ActiveRouteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var result *ops.ActiveRouteOutput
	if input.Route != nil {
		result, err = ops.SetActiveRoute(ctx, h.db, h.cfg, ops.SetActiveRouteInput{
			ChatID:  input.ChatID,
			OwnerID: input.OwnerID,
			Route:   *input.Route,
		})
	} else {
		result, err = ops.GetActiveRoute(ctx, h.db, ops.ActiveRouteInput{
			ChatID:  input.ChatID,
			OwnerID: input.OwnerID,
		})
	}
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTop handles the usage_top tool call.
func (h *Handlers) HandleTop(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TopRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TopRoutes(ctx, h.db, h.cfg, ops.TopRoutesInput{
		OwnerID: input.OwnerID,
		Limit:   input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from an error.
// A wrapped HubError keeps its code; the message carries the wrapper context.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var hubErr *errors.HubError
	if stderrors.As(err, &hubErr) {
		msg := hubErr.Message
		if err != hubErr {
			msg = err.Error()
		}
		errorObj := map[string]any{
			"code":    hubErr.Code,
			"message": msg,
			"status":  hubErr.Status,
		}
		// Internal errors never expose details (SQL text, file paths)
		if hubErr.Code != errors.ErrInternal && hubErr.Details != nil {
			errorObj["details"] = hubErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
