package plugin

import (
	"context"
	"errors"
	"time"
)

// EventPatternWriteEnd is emitted by the host after a pattern's output files are written.
const EventPatternWriteEnd = "pattern-write-end"

var (
	// ErrBusClosed is returned when publishing to a closed EventBus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrUnexpectedPayload is returned by handlers that receive event data of the wrong type.
	ErrUnexpectedPayload = errors.New("unexpected event payload")
)

// Event represents a host or plugin event.
type Event struct {
	Name      string    // e.g. "pattern-write-end"
	Data      any       // payload
	Source    string    // originating component
	Timestamp time.Time // when the event was created
}

// PatternWritten is the payload of EventPatternWriteEnd.
type PatternWritten struct {
	State   *HostState
	Pattern *Pattern
}

// EventHandler is the typed handler for events.
type EventHandler func(ctx context.Context, event Event) error

// Subscription represents an active event subscription.
type Subscription interface {
	Unsubscribe()
}

// EventBus is the host's event surface.
//
// Handlers run synchronously on the publishing goroutine, in subscription order.
type EventBus interface {
	// Publish delivers an event to every subscriber of its name and returns
	// the joined handler errors.
	Publish(ctx context.Context, event Event) error

	// Subscribe registers a handler for a topic. Returns a Subscription for unsubscribing.
	Subscribe(topic string, handler EventHandler) Subscription

	// SubscriberCount reports how many handlers are attached to a topic.
	SubscriberCount(topic string) int

	// Close rejects further publishes.
	Close() error
}
