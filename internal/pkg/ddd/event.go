// Package ddd holds the domain event contracts shared by aggregates and the
// unit of work that persists their events to the outbox.
package ddd

import "github.com/google/uuid"

// Event is a fact recorded by an aggregate. Implementations are JSON-serialisable.
type Event interface {
	EventID() uuid.UUID
	EventName() string
	AggregateID() uuid.UUID
}

// EventSource is implemented by aggregates that record events. PullEvents
// returns the pending events and clears them.
type EventSource interface {
	PullEvents() []Event
}
