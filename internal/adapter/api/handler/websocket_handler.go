package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"servicehub/internal/domain/repository"
	"servicehub/internal/infrastructure/ratelimit"
	ws "servicehub/internal/infrastructure/websocket"
	"servicehub/internal/usecase"
	"servicehub/pkg/errors"
	"servicehub/pkg/logger"
	"servicehub/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager     *ws.Manager
	sessionUC   *usecase.SessionUseCase
	catalogUC   *usecase.CatalogUseCase
	chatUC      *usecase.ChatUseCase
	rateLimiter *ratelimit.RateLimiter
}

func NewWebSocketHandler(
	manager *ws.Manager,
	sessionUC *usecase.SessionUseCase,
	catalogUC *usecase.CatalogUseCase,
	chatUC *usecase.ChatUseCase,
	rateLimiter *ratelimit.RateLimiter,
) *WebSocketHandler {
	return &WebSocketHandler{
		manager:     manager,
		sessionUC:   sessionUC,
		catalogUC:   catalogUC,
		chatUC:      chatUC,
		rateLimiter: rateLimiter,
	}
}

// wsCommand is what clients send over the socket. The only action is
// "subscribe"; each subscribe replaces the previous view's feed.
type wsCommand struct {
	Action string `json:"action"`
	Feed   string `json:"feed"`
	ChatID string `json:"chat_id,omitempty"`
}

// HandleConnection upgrades the request and serves live feeds for one
// client. The token query parameter carries the Firebase credential;
// without one an anonymous identity is bootstrapped and its custom token
// delivered as the first event.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	session, err := h.sessionUC.Bootstrap(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return response.Error(c, err)
	}

	if allowed, retryAfter := h.rateLimiter.Allow(session.Identity); !allowed {
		c.Response().Header().Set("Retry-After", retryAfter.String())
		return response.Error(c, errors.TooManyRequests("Too many connection attempts", retryAfter))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", session.Identity, err)
		return err
	}

	client := &ws.Client{
		Identity: session.Identity,
		Conn:     conn,
		Send:     make(chan []byte, 256),
	}

	h.manager.Register <- client
	go client.WritePump()

	// Feeds outlive individual request contexts; they are cancelled when
	// the connection goes away.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.manager.SendEvent(session.Identity, ws.Event{Type: "session.ready", Payload: session})

	defer func() {
		session.End()
		h.manager.Unregister <- client
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read failed for %s: %v", session.Identity, err)
			}
			return nil
		}

		var cmd wsCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.manager.SendEvent(session.Identity, ws.Event{Type: "command.error", Payload: "malformed command"})
			continue
		}

		if cmd.Action != "subscribe" {
			h.manager.SendEvent(session.Identity, ws.Event{Type: "command.error", Payload: "unknown action"})
			continue
		}

		h.subscribe(ctx, session, cmd)
	}
}

// subscribe tears down the previous view's feed and opens the requested
// one. The feed's disposer is tracked on the session so navigation or
// disconnect cancels it.
func (h *WebSocketHandler) subscribe(ctx context.Context, session *usecase.Session, cmd wsCommand) {
	session.End()

	switch cmd.Feed {
	case "catalog":
		session.Navigate(usecase.GoHome{Role: roleOrDefault(session)})
		feed, err := h.catalogUC.SubscribeAll(ctx)
		if err != nil {
			h.subscribeError(session, cmd.Feed, err)
			return
		}
		pumpFeed(h.manager, session, feed, "catalog.snapshot")

	case "my-listings":
		session.Navigate(usecase.GoHome{Role: roleOrDefault(session)})
		feed, err := h.catalogUC.SubscribeBySeller(ctx, session.Identity)
		if err != nil {
			h.subscribeError(session, cmd.Feed, err)
			return
		}
		pumpFeed(h.manager, session, feed, "my-listings.snapshot")

	case "chats":
		session.Navigate(usecase.OpenChats{})
		feed, err := h.chatUC.Subscribe(ctx, session.Identity)
		if err != nil {
			h.subscribeError(session, cmd.Feed, err)
			return
		}
		viewer := session.Identity
		session.Track(feed.Stop)
		go func() {
			for snap := range feed.Updates {
				if snap.Err != nil {
					h.manager.SendEvent(viewer, ws.Event{Type: "subscription.error", Payload: snap.Err.Error()})
					continue
				}
				h.manager.SendEvent(viewer, ws.Event{
					Type:    "chats.snapshot",
					Payload: h.chatUC.Summarize(ctx, viewer, snap.Items),
				})
			}
		}()

	case "messages":
		session.Navigate(usecase.OpenChat{ChatID: cmd.ChatID})
		feed, err := h.chatUC.SubscribeMessages(ctx, session.Identity, cmd.ChatID)
		if err != nil {
			h.subscribeError(session, cmd.Feed, err)
			return
		}
		pumpFeed(h.manager, session, feed, "messages.snapshot")

	default:
		h.manager.SendEvent(session.Identity, ws.Event{Type: "command.error", Payload: "unknown feed"})
	}
}

func (h *WebSocketHandler) subscribeError(session *usecase.Session, feed string, err error) {
	logger.Error("Subscription to %s failed for %s: %v", feed, session.Identity, err)
	h.manager.SendEvent(session.Identity, ws.Event{Type: "subscription.error", Payload: err.Error()})
}

// pumpFeed forwards every delivery of a feed to the session's client
// until the feed closes. Error deliveries become subscription.error
// events; the feed closes itself afterwards.
func pumpFeed[T any](manager *ws.Manager, session *usecase.Session, feed *repository.Feed[T], eventType string) {
	session.Track(feed.Stop)
	identity := session.Identity
	go func() {
		for snap := range feed.Updates {
			if snap.Err != nil {
				manager.SendEvent(identity, ws.Event{Type: "subscription.error", Payload: snap.Err.Error()})
				continue
			}
			manager.SendEvent(identity, ws.Event{Type: eventType, Payload: snap.Items})
		}
	}()
}

func roleOrDefault(session *usecase.Session) string {
	if session.Profile != nil {
		return session.Profile.Role
	}
	return ""
}
