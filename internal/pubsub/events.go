// Package pubsub provides a generic publish/subscribe event broker used to
// fan log entries out to listeners without coupling the producer to
// whatever UI loop consumes them.
package pubsub

import (
	"context"
	"time"
)

// EventType distinguishes the kind of change a published payload represents.
type EventType string

const (
	CreatedEvent EventType = "created"
	ChangedEvent EventType = "changed"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event wraps a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber exposes a subscription channel for events of type T.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing typed events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
