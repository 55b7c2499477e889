package events

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// EventBus defines the interface for the event bus system
type EventBus interface {
	// Publish delivers event to every matching subscriber without blocking.
	Publish(event Event)

	// Subscribe returns a channel of events of the given types (all types
	// when none are given) and a function that ends the subscription.
	Subscribe(types ...EventType) (<-chan Event, func())
}

type subscription struct {
	ch    chan Event
	types map[EventType]struct{}
}

func (s *subscription) wants(t EventType) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Bus is a fan-out EventBus. A subscriber whose buffer is full misses the
// event rather than stalling the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
	buffer int
	logger hclog.Logger
}

// NewBus creates a bus whose subscriber channels hold buffer events.
func NewBus(buffer int, logger hclog.Logger) *Bus {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Bus{
		subs:   make(map[int]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, sub := range b.subs {
		if !sub.wants(event.Type) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			b.logger.Debug("subscriber buffer full, dropping event", "subscriber", id, "type", event.Type)
		}
	}
}

func (b *Bus) Subscribe(types ...EventType) (<-chan Event, func()) {
	sub := &subscription{
		ch:    make(chan Event, b.buffer),
		types: make(map[EventType]struct{}, len(types)),
	}
	for _, t := range types {
		sub.types[t] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
