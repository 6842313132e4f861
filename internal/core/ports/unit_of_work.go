package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction; before Begin they run without one.
// Commit also writes the events recorded by tracked aggregates to the outbox.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	OrderItemRepository() OrderItemRepository
	ProductRepository() ProductRepository
	UserRepository() UserRepository
	OutboxRepository() OutboxRepository
}
