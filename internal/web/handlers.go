package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/ops"
	"github.com/brooksai/slashhub/internal/route"
)

// Handlers contains HTTP route handlers for the API.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	version string
	metrics *Metrics
}

// HandleListRoutes handles GET /api/routes, every official route.
func (h *Handlers) HandleListRoutes(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListRegistry(r.Context(), h.db, h.cfg)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// RegisterRouteBody is the JSON body of POST /api/routes.
type RegisterRouteBody struct {
	Slash string `json:"slash"`
	Label string `json:"label,omitempty"`
}

// HandleRegisterRoute handles POST /api/routes: add or update an official route.
func (h *Handlers) HandleRegisterRoute(w http.ResponseWriter, r *http.Request) {
	var body RegisterRouteBody
	if err := decodeBody(w, r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.RegisterRoute(r.Context(), h.db, h.cfg, ops.RegisterRouteInput{
		Slash: body.Slash,
		Label: body.Label,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleResolve handles GET /api/routes/resolve?route=&owner_id=&limit=.
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := ops.Lookup(r.Context(), h.db, h.cfg, ops.LookupInput{
		Route:   q.Get("route"),
		OwnerID: q.Get("owner_id"),
		Limit:   parseIntParam(r, "limit", 0),
	})
	if err != nil {
		renderError(w, err)
		return
	}

	h.metrics.RecordLookup("resolve", string(result.Status))
	renderJSON(w, http.StatusOK, result)
}

// HandleSuggest handles GET /api/routes/suggest?prefix=&owner_id=&limit=&by_usage=.
func (h *Handlers) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := ops.Suggest(r.Context(), h.db, h.cfg, ops.SuggestInput{
		Prefix:  q.Get("prefix"),
		OwnerID: q.Get("owner_id"),
		Limit:   parseIntParam(r, "limit", 0),
		ByUsage: parseBoolParam(r, "by_usage"),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleListATOs handles GET /api/owners/{owner}/atos.
func (h *Handlers) HandleListATOs(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListCustomRoutes(r.Context(), h.db, ops.ListCustomRoutesInput{
		OwnerID: r.PathValue("owner"),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// CreateATOBody is the JSON body of POST /api/owners/{owner}/atos.
type CreateATOBody struct {
	Name  string  `json:"name"`
	Route *string `json:"route,omitempty"`
}

// HandleCreateATO handles POST /api/owners/{owner}/atos.
func (h *Handlers) HandleCreateATO(w http.ResponseWriter, r *http.Request) {
	var body CreateATOBody
	if err := decodeBody(w, r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.CreateCustomRoute(r.Context(), h.db, h.cfg, ops.CreateCustomRouteInput{
		OwnerID: r.PathValue("owner"),
		Name:    body.Name,
		Route:   body.Route,
	})
	if err != nil {
		h.metrics.CustomRouteErrors.WithLabelValues(string(hubErrorCode(err))).Inc()
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, result)
}

// HandleDeleteATO handles DELETE /api/owners/{owner}/atos/{id}.
func (h *Handlers) HandleDeleteATO(w http.ResponseWriter, r *http.Request) {
	result, err := ops.DeleteCustomRoute(r.Context(), h.db, ops.DeleteCustomRouteInput{
		OwnerID: r.PathValue("owner"),
		ID:      r.PathValue("id"),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleTop handles GET /api/owners/{owner}/top?limit=.
func (h *Handlers) HandleTop(w http.ResponseWriter, r *http.Request) {
	result, err := ops.TopRoutes(r.Context(), h.db, h.cfg, ops.TopRoutesInput{
		OwnerID: r.PathValue("owner"),
		Limit:   parseIntParam(r, "limit", 0),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// SendBody is the JSON body of POST /api/chats/messages.
type SendBody struct {
	ChatID  string `json:"chat_id,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Text    string `json:"text"`
}

// HandleSend handles POST /api/chats/messages: one chat turn.
func (h *Handlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	var body SendBody
	if err := decodeBody(w, r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.Send(r.Context(), h.db, h.cfg, ops.SendInput{
		ChatID:  body.ChatID,
		OwnerID: body.OwnerID,
		Text:    body.Text,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	h.metrics.RecordLookup("chat", string(result.Status))
	renderJSON(w, http.StatusOK, result)
}

// HandleGetChat handles GET /api/chats/{id}?owner_id=, the chat's active route.
func (h *Handlers) HandleGetChat(w http.ResponseWriter, r *http.Request) {
	result, err := ops.GetActiveRoute(r.Context(), h.db, ops.ActiveRouteInput{
		ChatID:  r.PathValue("id"),
		OwnerID: r.URL.Query().Get("owner_id"),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// SetChatRouteBody is the JSON body of PUT /api/chats/{id}/route.
type SetChatRouteBody struct {
	OwnerID string `json:"owner_id,omitempty"`
	Route   string `json:"route"`
}

// HandleSetChatRoute handles PUT /api/chats/{id}/route: restore an active route.
func (h *Handlers) HandleSetChatRoute(w http.ResponseWriter, r *http.Request) {
	var body SetChatRouteBody
	if err := decodeBody(w, r, &body); err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.SetActiveRoute(r.Context(), h.db, h.cfg, ops.SetActiveRouteInput{
		ChatID:  r.PathValue("id"),
		OwnerID: body.OwnerID,
		Route:   body.Route,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleHelp handles GET /help?owner_id=, the route directory as HTML.
func (h *Handlers) HandleHelp(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Suggest(r.Context(), h.db, h.cfg, ops.SuggestInput{
		OwnerID: r.URL.Query().Get("owner_id"),
		Limit:   ops.MaxSuggestLimit,
	})
	if err != nil {
		renderError(w, err)
		return
	}

	renderPage(w, http.StatusOK, PageData{
		Title:   "slashhub help",
		Version: h.version,
		Body:    renderMarkdown(helpMarkdown(h.cfg, result.Items)),
	})
}

// helpMarkdown builds the help page source.
func helpMarkdown(cfg *config.Config, items []route.Suggestion) string {
	home := route.DefaultRoute
	if cfg != nil && cfg.DefaultRoute != "" {
		home = cfg.DefaultRoute
	}

	var sb strings.Builder
	sb.WriteString("# Slash routes\n\n")
	sb.WriteString("Start a message with `/route` to switch to it, e.g. `/NAMC what is Ghost Girl`. ")
	sb.WriteString("Messages without a route stay on the current one. ")
	fmt.Fprintf(&sb, "New chats start on `%s`. Type `/help` to list routes.\n\n", home)

	if len(items) == 0 {
		sb.WriteString("_No routes registered._\n")
		return sb.String()
	}

	sb.WriteString("| Route | Name | Kind | Access |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, s := range items {
		access := "everyone"
		if s.FoundersOnly {
			access = "founders"
		}
		if s.RedirectURL != "" {
			access = "redirect"
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n", s.Route, escapeCell(s.Label), s.Kind, access)
	}
	return sb.String()
}

// escapeCell keeps user-supplied labels from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// decodeBody reads a size-limited JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam checks if a query parameter is "true" or "1".
func parseBoolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}
