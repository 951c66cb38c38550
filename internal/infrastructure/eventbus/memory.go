package eventbus

import (
	"context"
	"errors"
	"sync"

	"github.com/iho/gowager/internal/domain"
)

// ErrBusClosed is returned when publishing to a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// MemoryBus is an in-process publisher. Subscribers receive events on
// buffered channels; a slow subscriber drops events rather than blocking
// the outbox worker.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]chan Envelope
	closed bool
}

// NewMemoryBus creates an in-process event bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subs: make(map[string][]chan Envelope),
	}
}

// Subscribe registers a channel for a topic. The returned channel is closed
// when the bus closes.
func (b *MemoryBus) Subscribe(topic string) <-chan Envelope {
	ch := make(chan Envelope, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[topic] = append(b.subs[topic], ch)
	return ch
}

// Publish delivers the event to all subscribers of its topic.
func (b *MemoryBus) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	env := envelope(event)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	for _, ch := range b.subs[event.Topic] {
		select {
		case ch <- env:
		default:
			// Subscriber buffer full, drop for this subscriber.
		}
	}
	return nil
}

// Close shuts the bus down and closes all subscriber channels.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for _, chans := range b.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	b.subs = nil
	return nil
}
