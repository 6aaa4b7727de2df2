package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leeforge/plminify/plugin"
	"go.uber.org/zap"
)

// Bus implements plugin.EventBus with synchronous, in-order dispatch.
type Bus struct {
	subscribers map[string][]subscriberEntry
	mu          sync.RWMutex
	closed      atomic.Bool
	logger      *zap.Logger
	nextID      atomic.Uint64
}

var _ plugin.EventBus = (*Bus)(nil)

type subscriberEntry struct {
	id      uint64
	handler plugin.EventHandler
}

// subscription implements plugin.Subscription.
type subscription struct {
	bus   *Bus
	topic string
	id    uint64
}

func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subscribers[s.topic]
	for i, entry := range subs {
		if entry.id == s.id {
			s.bus.subscribers[s.topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// NewEventBus creates a new synchronous EventBus.
func NewEventBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subscribers: make(map[string][]subscriberEntry),
		logger:      logger,
	}
}

// Publish runs every handler subscribed to event.Name on the calling
// goroutine. A failing handler does not stop the others; all errors are
// joined and returned to the caller.
func (b *Bus) Publish(ctx context.Context, event plugin.Event) error {
	if b.closed.Load() {
		return plugin.ErrBusClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	subs := append([]subscriberEntry{}, b.subscribers[event.Name]...)
	b.mu.RUnlock()

	var errs []error
	for _, entry := range subs {
		if err := entry.handler(ctx, event); err != nil {
			b.logger.Warn("event handler error",
				zap.String("event", event.Name),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler plugin.EventHandler) plugin.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID.Add(1)
	b.subscribers[topic] = append(b.subscribers[topic], subscriberEntry{
		id:      id,
		handler: handler,
	})

	return &subscription{bus: b, topic: topic, id: id}
}

// SubscriberCount reports how many handlers are attached to topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Close stops accepting new events.
func (b *Bus) Close() error {
	b.closed.Store(true)
	return nil
}
