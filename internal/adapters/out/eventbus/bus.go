// Package eventbus fans committed order events out to in-process subscribers.
// The live board and the metrics collector subscribe here instead of polling.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"kiosk/internal/core/domain/model/order"
)

// Handler receives one event. Handlers run synchronously on the publishing
// goroutine and must not block.
type Handler func(ctx context.Context, event order.Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus implements ports.EventPublisher.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
	logger *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger.With("component", "event_bus")}
}

// Subscribe registers handler and returns a function that removes it.
func (b *Bus) Subscribe(handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers events in order to every subscriber. A panicking handler is
// logged and does not stop delivery to the others.
func (b *Bus) Publish(ctx context.Context, events ...order.Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, event := range events {
		for _, s := range subs {
			b.deliver(ctx, s.handler, event)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, handler Handler, event order.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"event", string(event.Kind), "token", event.Token, "panic", r)
		}
	}()
	handler(ctx, event)
}
