package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Authenticator maps a bearer token to a directory user id
type Authenticator func(ctx context.Context, token string) (uint, error)

var upgrader = websocket.Upgrader{
	// browsers connect cross-origin from the web client
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves a user's notification socket. Browsers cannot set headers
// on a websocket handshake, so the token travels in the query string.
func Handler(hub *Hub, authenticate Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		userID, err := authenticate(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade has already written the error response
			hub.log.Warn("ws: upgrade failed", err)
			return nil
		}
		client := hub.register(userID, conn)
		defer hub.Unregister(userID, conn)
		hub.log.Debug("ws: connected", userID)

		// the buffer is empty, so this cannot block
		if data, err := json.Marshal(Message{Type: TypeConnected, Data: map[string]uint{"user_id": userID}}); err == nil {
			client.send <- data
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.log.Debug("ws: disconnected", userID)
		return nil
	}
}
