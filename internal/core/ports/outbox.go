package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a domain event persisted in the same transaction as the
// aggregate change that produced it.
type OutboxMessage struct {
	ID        int64
	EventID   uuid.UUID
	Name      string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
type OutboxRepository interface {
	// FetchPending returns up to limit unsent messages in insertion order and
	// locks them, skipping rows already locked by another relay.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, ids []int64, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
