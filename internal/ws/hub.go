package ws

import (
	"encoding/json"
	"sync"

	"github.com/anonto42/project-showcase/backend/internal/logger"
	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/gorilla/websocket"
)

const sendBuffer = 64

// Message types pushed to clients
const (
	TypeConnected    = "connected"
	TypeNotification = "notification"
	TypeUnreadCount  = "unread_count"
)

// Message is the JSON frame written to a socket
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the open sockets of each user. A user may hold several
// connections (tabs, devices); every one of them receives each push.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*websocket.Conn]*client
	log     logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]*client),
		log:     log,
	}
}

// Register attaches conn to userID and starts its write pump.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.register(userID, conn)
}

func (h *Hub) register(userID uint, conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*websocket.Conn]*client)
	}
	h.clients[userID][conn] = c
	h.mu.Unlock()

	go h.writePump(c)
	return c
}

// Unregister detaches conn; the write pump then closes the socket.
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	if c, ok := clients[conn]; ok {
		close(c.send)
		delete(clients, conn)
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
}

// Connections returns how many sockets userID currently holds
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Send queues msg for every socket of userID. Slow clients lose messages
// rather than block the caller.
func (h *Hub) Send(userID uint, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("ws: marshal message", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			h.log.Warn("ws: send buffer full, dropping message", userID)
		}
	}
}

func (h *Hub) PublishNotification(n models.Notification) {
	h.Send(n.SentTo, Message{Type: TypeNotification, Data: n})
}

func (h *Hub) PublishUnreadCount(userID uint, count int64) {
	h.Send(userID, Message{Type: TypeUnreadCount, Data: map[string]int64{"unread_count": count}})
}

func (h *Hub) writePump(c *client) {
	defer func() {
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		_ = c.conn.Close()
	}()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
