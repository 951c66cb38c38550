package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gowager/internal/domain"
)

// RedisBus publishes events over Redis pub/sub. Each event goes to the
// channel named after its topic, so WebSocket gateways on other nodes can
// subscribe to the lanes they care about.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a Redis-backed event bus.
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Publish serializes the event and publishes it to its topic channel.
func (b *RedisBus) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	data, err := json.Marshal(envelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	if err := b.client.Publish(ctx, event.Topic, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event %s to %s: %w", event.ID, event.Topic, err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (b *RedisBus) Close() error {
	return nil
}
