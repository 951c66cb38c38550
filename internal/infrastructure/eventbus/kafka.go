package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/iho/gowager/internal/domain"
)

// KafkaBus publishes events to a Kafka topic for durable downstream
// consumers. The outbox topic becomes a message header and the aggregate ID
// the partition key, so events for one match or account stay ordered.
type KafkaBus struct {
	writer *kafka.Writer
}

// NewKafkaBus creates a Kafka-backed event bus writing to the given topic.
func NewKafkaBus(brokers []string, topic string) *KafkaBus {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &KafkaBus{writer: writer}
}

// Publish writes the event keyed by aggregate ID.
func (b *KafkaBus) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	data, err := json.Marshal(envelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "topic", Value: []byte(event.Topic)},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event %s: %w", event.ID, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (b *KafkaBus) Close() error {
	return b.writer.Close()
}
