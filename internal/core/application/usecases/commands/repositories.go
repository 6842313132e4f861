// Package commands holds the use cases that change state. Each command is
// validated on construction and handled inside one unit of work.
package commands

import (
	"context"

	"salesorder/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW spans orders, their items, the products they reference and the
	// users acting on them.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil { ... }
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	// ... repository calls
	//	err := uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderItemRepoFactory
		ProductRepoFactory
		UserRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW is used by the relay to drain pending events.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
