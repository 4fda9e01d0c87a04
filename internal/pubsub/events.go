// Package pubsub provides a small generic publish/subscribe broker and the
// glue needed to feed its events into a Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType describes what happened to the payload.
type EventType string

const (
	// CreatedEvent announces a new payload (a log entry, a new photo file).
	CreatedEvent EventType = "created"
)

// Event wraps a payload with its type and publication time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
