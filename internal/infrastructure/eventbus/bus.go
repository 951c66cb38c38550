// Package eventbus fans committed outbox events out to subscribers.
// Three backends ship: an in-process bus for single-node and test runs,
// Redis pub/sub for multi-node fan-out and Kafka for durable streams.
package eventbus

import (
	"context"

	"github.com/iho/gowager/internal/domain"
)

// Publisher delivers an event to every subscriber of its topic. Delivery is
// at-least-once and after commit; consumers must tolerate duplicates.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
	Close() error
}

// Envelope is the wire form of a published event.
type Envelope struct {
	ID            string         `json:"id"`
	Topic         string         `json:"topic"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     string         `json:"created_at"`
}

func envelope(event *domain.OutboxEvent) Envelope {
	return Envelope{
		ID:            event.ID,
		Topic:         event.Topic,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
