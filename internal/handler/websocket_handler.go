package handler

import (
	"context"
	"net/http"

	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SessionValidator resolves a query-string token to a household session
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (websocket.Session, error)
}

// WebSocketHandler opens live household event feeds
type WebSocketHandler struct {
	hub      *websocket.Hub
	sessions SessionValidator
	origins  []string
	upgrader ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. Origins use the CORS allow list.
func NewWebSocketHandler(hub *websocket.Hub, sessions SessionValidator, origins []string) *WebSocketHandler {
	h := &WebSocketHandler{hub: hub, sessions: sessions, origins: origins}
	h.upgrader.CheckOrigin = h.checkOrigin
	return h
}

// checkOrigin lets non-browser clients through; they send no Origin header
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get(echo.HeaderOrigin)
	if origin == "" {
		return true
	}
	for _, allowed := range h.origins {
		if origin == allowed {
			return true
		}
	}
	log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
	return false
}

// HandleWS upgrades GET /ws?token=<jwt> to a feed of the caller's household events
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	session, err := h.sessions.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket token rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn().Err(err).Int32("household_id", session.HouseholdID).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, session)
	log.Info().Int32("household_id", session.HouseholdID).Str("client_id", client.ID()).Msg("WebSocket feed opened")
	go client.Serve(h.hub)
	return nil
}
