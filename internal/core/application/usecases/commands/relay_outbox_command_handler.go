package commands

import (
	"context"
	"time"

	"salesorder/internal/core/ports"
)

// RelayOutboxCommandHandler moves pending outbox messages to the broker.
// Messages are marked sent in the same transaction that locked them, after the
// broker acknowledged them, so delivery is at least once.
//
// Example:
//
//	handler := NewRelayOutboxCommandHandler(outboxUoWFactory, publisher)
//	cmd, _ := NewRelayOutboxCommand(100)
//	sent, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Relay failed: %v", err)
//	    return
//	}
//	log.Printf("Relayed %d messages", sent)
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

// NewRelayOutboxCommandHandler creates a handler that drains the outbox into publisher.
func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle returns the number of messages published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkSent(ctx, ids, h.now().UTC()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
