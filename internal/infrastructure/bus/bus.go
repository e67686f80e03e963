package bus

import (
	"context"
	"sync"

	"github.com/example/ec-shop/internal/domain"
)

// Subscriber receives every event published to an in-memory bus.
type Subscriber func(ctx context.Context, event domain.Event)

// InMemory is a process-local event bus for tests and single-node runs.
// Subscribers run synchronously on the publisher's goroutine.
type InMemory struct {
	mu          sync.RWMutex
	published   []domain.Event
	subscribers []Subscriber
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (b *InMemory) Publish(ctx context.Context, events ...domain.Event) error {
	b.mu.Lock()
	b.published = append(b.published, events...)
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, event := range events {
		for _, sub := range subs {
			sub(ctx, event)
		}
	}
	return nil
}

func (b *InMemory) Subscribe(sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()
}

// Published returns every event seen so far, oldest first.
func (b *InMemory) Published() []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Event, len(b.published))
	copy(out, b.published)
	return out
}

// PublishedOfType filters published events by type.
func (b *InMemory) PublishedOfType(eventType string) []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []domain.Event
	for _, e := range b.published {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}
