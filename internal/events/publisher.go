package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"codeshare/internal/utils"
)

// Channel carries room lifecycle events for external consumers.
const Channel = "room-events"

// Event kinds published on Channel.
const (
	KindCreated           = "created"
	KindPermissionChanged = "permission-changed"
)

type Event struct {
	Kind string `json:"kind"`
	Room string `json:"room"`
	At   string `json:"at"` // RFC3339
}

// Publisher pushes room lifecycle events to a Redis channel. The in-memory
// registry stays the single authority; this is a one-way feed, best effort.
// A nil Publisher is valid and publishes nothing.
type Publisher struct {
	rdb *redis.Client
	log *utils.Logger
}

// NewPublisher returns nil when no address is configured.
func NewPublisher(addr string, log *utils.Logger) *Publisher {
	if addr == "" {
		return nil
	}
	return &Publisher{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		log: log,
	}
}

// Ping verifies connectivity at startup. Failures are logged, not fatal.
func (p *Publisher) Ping(ctx context.Context) {
	if p == nil {
		return
	}
	if err := p.rdb.Ping(ctx).Err(); err != nil {
		p.log.Warn("events: redis unreachable", "error", err.Error())
	}
}

// Publish sends one event. Errors never propagate to room operations.
func (p *Publisher) Publish(ctx context.Context, kind, room string) {
	if p == nil {
		return
	}
	raw, err := json.Marshal(Event{
		Kind: kind,
		Room: room,
		At:   time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, Channel, raw).Err(); err != nil {
		p.log.Warn("events: publish failed", "kind", kind, "room", room, "error", err.Error())
	}
}

// Close releases the Redis client.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
