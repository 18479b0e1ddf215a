package session

import (
	"sync"

	"codeshare/internal/models"
)

// Hub tracks which connections are subscribed to which rooms and fans
// frames out to room peers. A connection's membership is a set of room
// codes: joining a second room does not leave the first.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	members map[*Client]map[string]bool // room code -> holds creator credential
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]struct{}),
		members: make(map[*Client]map[string]bool),
	}
}

// Join subscribes c to room. A repeat join never demotes an established
// creator flag.
func (h *Hub) Join(c *Client, room string, creator bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[room]
	if !ok {
		subs = make(map[*Client]struct{})
		h.rooms[room] = subs
	}
	subs[c] = struct{}{}

	m, ok := h.members[c]
	if !ok {
		m = make(map[string]bool)
		h.members[c] = m
	}
	m[room] = m[room] || creator
}

// Promote marks an already-subscribed connection as the room's creator.
// No-op for connections that never joined the room.
func (h *Hub) Promote(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.members[c]; ok {
		if _, joined := m[room]; joined {
			m[room] = true
		}
	}
}

// Subscribed reports whether c joined room.
func (h *Hub) Subscribed(c *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.members[c][room]
	return ok
}

// Creator reports whether c holds the creator credential for room.
func (h *Hub) Creator(c *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.members[c][room]
}

// Drop discards every subscription held by c. Called on disconnect; no
// leave broadcast goes to room peers.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range h.members[c] {
		if subs, ok := h.rooms[room]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	delete(h.members, c)
}

// Broadcast delivers frame to every subscriber of room except sender.
// The originator never receives its own edit echoed back.
func (h *Hub) Broadcast(room string, sender *Client, frame models.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		if c == sender {
			continue
		}
		c.Send(frame)
	}
}

// Subscribers reports how many connections are joined to room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
