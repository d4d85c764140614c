package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/route"
)

// SendInput contains parameters for the Send operation.
type SendInput struct {
	ChatID  string // default: a new chat is started
	OwnerID string // optional; enables custom routes and usage counts
	Text    string // one line of user input
}

// SendOutput contains the result of the Send operation.
type SendOutput struct {
	ChatID        string             `json:"chat_id"`
	Status        Status             `json:"status"`
	Command       route.Command      `json:"command"`
	PreviousRoute string             `json:"previous_route"`
	ActiveRoute   string             `json:"active_route"`
	Route         *route.Suggestion  `json:"route,omitempty"`
	RedirectURL   string             `json:"redirect_url,omitempty"`
	Suggestions   []route.Suggestion `json:"suggestions,omitempty"`
}

// Send processes one chat turn: it parses the input, switches the chat's
// active route when a known route is named, and carries the previous route
// otherwise. Unknown routes leave the active route unchanged and return
// prefix suggestions.
func Send(ctx context.Context, database *sql.DB, cfg *config.Config, input SendInput) (*SendOutput, error) {
	sess, err := loadOrStartSession(ctx, database, cfg, input.ChatID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	cmd := route.ParseSlashCommand(input.Text)
	out := &SendOutput{
		ChatID:        sess.ID,
		Command:       cmd,
		PreviousRoute: sess.ActiveRoute,
		ActiveRoute:   sess.ActiveRoute,
	}

	switch {
	case cmd.IsHelp:
		suggested, err := Suggest(ctx, database, cfg, SuggestInput{
			Prefix:  cmd.Content,
			OwnerID: sess.OwnerID,
			ByUsage: true,
		})
		if err != nil {
			return nil, err
		}
		out.Status = StatusHelp
		out.Suggestions = suggested.Items
		return out, nil

	case !cmd.HasRoute():
		out.Status = StatusMessage
		out.ActiveRoute = route.ResolveActiveRoute(sess.ActiveRoute, "")
		return out, nil
	}

	home := defaultRoute(cfg)
	if route.NormalizeKey(cmd.Route) == route.NormalizeKey(home) {
		out.Status = StatusResolved
		return switchRoute(ctx, database, sess, out, home)
	}

	s, err := Resolve(ctx, database, cfg, ResolveInput{Route: cmd.Route, OwnerID: sess.OwnerID})
	if err != nil {
		return nil, err
	}

	if s == nil {
		suggested, err := Suggest(ctx, database, cfg, SuggestInput{
			Prefix:  cmd.Route,
			OwnerID: sess.OwnerID,
		})
		if err != nil {
			return nil, err
		}
		out.Status = StatusUnknown
		out.Suggestions = suggested.Items
		return out, nil
	}

	out.Route = s
	if s.RedirectURL != "" {
		out.Status = StatusRedirected
		out.RedirectURL = s.RedirectURL
		return out, nil
	}

	if err := db.NewUsageStore(database, sess.OwnerID).Increment(ctx, s.Key()); err != nil {
		return nil, err
	}

	out.Status = StatusResolved
	return switchRoute(ctx, database, sess, out, route.ResolveActiveRoute(sess.ActiveRoute, s.Key()))
}

// switchRoute persists a new active route when it differs from the current one.
func switchRoute(ctx context.Context, database *sql.DB, sess *route.Session, out *SendOutput, next string) (*SendOutput, error) {
	out.ActiveRoute = next
	if next == sess.ActiveRoute {
		return out, nil
	}
	if _, err := db.UpdateActiveRoute(ctx, database, sess.ID, next); err != nil {
		return nil, err
	}
	return out, nil
}

// loadOrStartSession fetches a chat, creating it on first use. A chat that
// belongs to another owner (including an anonymous caller asking for an
// owned chat) is reported as not found.
func loadOrStartSession(ctx context.Context, database *sql.DB, cfg *config.Config, chatID, ownerID string) (*route.Session, error) {
	chatID = strings.TrimSpace(chatID)
	ownerID = strings.TrimSpace(ownerID)

	if chatID != "" {
		sess, err := db.GetSession(ctx, database, chatID)
		if err == nil {
			if !ownsChat(sess, ownerID) {
				return nil, errors.NewNotFound("chat", chatID)
			}
			return sess, nil
		}
		if !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
	} else {
		id, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		chatID = id
	}

	now := time.Now().Unix()
	sess := &route.Session{
		ID:          chatID,
		OwnerID:     ownerID,
		ActiveRoute: defaultRoute(cfg),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.InsertSession(ctx, database, sess); err != nil {
		if err == db.ErrUniqueConstraint {
			// Lost a race with a concurrent first message; use the stored row.
			return loadOrStartSession(ctx, database, cfg, chatID, ownerID)
		}
		return nil, err
	}
	return sess, nil
}

// ownsChat reports whether ownerID may read or advance the chat. Owners must
// match exactly; chats started without an owner are only visible without one.
func ownsChat(sess *route.Session, ownerID string) bool {
	return sess.OwnerID == strings.TrimSpace(ownerID)
}

// defaultRoute returns the configured home route.
func defaultRoute(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.DefaultRoute) != "" {
		return cfg.DefaultRoute
	}
	return route.DefaultRoute
}

// ActiveRouteInput contains parameters for the GetActiveRoute operation.
type ActiveRouteInput struct {
	ChatID  string // required
	OwnerID string // must match the chat's owner; empty only for anonymous chats
}

// ActiveRouteOutput contains a chat's current route.
type ActiveRouteOutput struct {
	ChatID      string `json:"chat_id"`
	OwnerID     string `json:"owner_id"`
	ActiveRoute string `json:"active_route"`
	UpdatedAt   int64  `json:"updated_at"`
}

// GetActiveRoute returns the route a chat is currently on.
func GetActiveRoute(ctx context.Context, database *sql.DB, input ActiveRouteInput) (*ActiveRouteOutput, error) {
	chatID := strings.TrimSpace(input.ChatID)
	if chatID == "" {
		return nil, errors.NewInvalidRequest("chat_id is required")
	}

	sess, err := db.GetSession(ctx, database, chatID)
	if err != nil {
		return nil, err
	}
	if !ownsChat(sess, input.OwnerID) {
		return nil, errors.NewNotFound("chat", chatID)
	}

	return &ActiveRouteOutput{
		ChatID:      sess.ID,
		OwnerID:     sess.OwnerID,
		ActiveRoute: sess.ActiveRoute,
		UpdatedAt:   sess.UpdatedAt,
	}, nil
}

// SetActiveRouteInput contains parameters for the SetActiveRoute operation.
type SetActiveRouteInput struct {
	ChatID  string // required
	OwnerID string // must match the chat's owner; empty only for anonymous chats
	Route   string // empty resets the chat to the default route
}

// SetActiveRoute restores a chat's active route, creating the chat if needed.
// The route must resolve for the chat's owner.
func SetActiveRoute(ctx context.Context, database *sql.DB, cfg *config.Config, input SetActiveRouteInput) (*ActiveRouteOutput, error) {
	if strings.TrimSpace(input.ChatID) == "" {
		return nil, errors.NewInvalidRequest("chat_id is required")
	}

	sess, err := loadOrStartSession(ctx, database, cfg, input.ChatID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	next := defaultRoute(cfg)
	if key := route.NormalizeKey(input.Route); key != "/" && key != route.NormalizeKey(next) {
		s, err := Resolve(ctx, database, cfg, ResolveInput{Route: input.Route, OwnerID: sess.OwnerID})
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, errors.NewNotFound("route", key)
		}
		if s.RedirectURL != "" {
			return nil, errors.NewInvalidRequest("redirect routes cannot be made active")
		}
		next = s.Key()
	}

	updatedAt := sess.UpdatedAt
	if next != sess.ActiveRoute {
		updatedAt, err = db.UpdateActiveRoute(ctx, database, sess.ID, next)
		if err != nil {
			return nil, err
		}
	}

	return &ActiveRouteOutput{
		ChatID:      sess.ID,
		OwnerID:     sess.OwnerID,
		ActiveRoute: next,
		UpdatedAt:   updatedAt,
	}, nil
}
