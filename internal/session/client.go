package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"codeshare/internal/models"
)

// Client wraps one live connection. ID is the opaque handle assigned at
// the transport boundary; a client is never reused after disconnect.
type Client struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex
	hook func(models.Frame)
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), Conn: conn}
}

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(models.Frame)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Send writes one frame. The mutex serializes writers: broadcasts from
// peer connections and replies from the owning read loop share the conn.
func (c *Client) Send(frame models.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(frame)
		return
	}
	if c.Conn == nil {
		return
	}
	_ = c.Conn.WriteJSON(frame)
}
