package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	auth := func(_ context.Context, token string) (uint, error) {
		switch token {
		case "alice":
			return 1, nil
		case "bob":
			return 2, nil
		}
		return 0, errors.New("bad token")
	}
	e := echo.New()
	e.GET("/ws", Handler(hub, auth))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	return websocket.DefaultDialer.Dial(url, nil)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandlerRejectsBadToken(t *testing.T) {
	srv := newTestServer(t, NewHub(logger.Nop()))

	_, resp, err := dial(t, srv, "mallory")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubDeliversToRecipientOnly(t *testing.T) {
	hub := NewHub(logger.Nop())
	srv := newTestServer(t, hub)

	alice, _, err := dial(t, srv, "alice")
	require.NoError(t, err)
	defer alice.Close()
	bob, _, err := dial(t, srv, "bob")
	require.NoError(t, err)
	defer bob.Close()

	assert.Equal(t, TypeConnected, readMessage(t, alice).Type)
	assert.Equal(t, TypeConnected, readMessage(t, bob).Type)

	hub.PublishNotification(models.Notification{SentTo: 2, Title: "New comment"})
	hub.PublishUnreadCount(2, 3)

	msg := readMessage(t, bob)
	assert.Equal(t, TypeNotification, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "New comment", data["title"])

	msg = readMessage(t, bob)
	assert.Equal(t, TypeUnreadCount, msg.Type)
	assert.Equal(t, map[string]interface{}{"unread_count": float64(3)}, msg.Data)

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = alice.ReadMessage()
	assert.Error(t, err, "alice must not receive bob's notifications")
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub(logger.Nop())
	srv := newTestServer(t, hub)

	conn, _, err := dial(t, srv, "alice")
	require.NoError(t, err)
	readMessage(t, conn)
	assert.Equal(t, 1, hub.Connections(1))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Connections(1) == 0 }, 2*time.Second, 10*time.Millisecond)

	// publishing to a user with no sockets is a no-op
	hub.PublishUnreadCount(1, 0)
}
