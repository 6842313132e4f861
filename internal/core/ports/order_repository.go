package ports

import (
	"context"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
)

// OrderFilter narrows bulk order reads. Nil fields do not filter.
// From and To bound the order date inclusively.
type OrderFilter struct {
	Status *order.Status
	From   *time.Time
	To     *time.Time
}

// OrderRepository persists order aggregates. Reads return orders with their
// items loaded in position order; bulk reads are ordered by order date, then id.
type OrderRepository interface {
	// Add stores the order row only. Items are added through OrderItemRepository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order columns (status, actioned fields, total). Items are untouched.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	GetAllWithItems(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	GetByCreator(ctx context.Context, createdBy kernel.UUID, filter OrderFilter) ([]*order.Order, error)
}

// OrderItemRepository persists order lines.
type OrderItemRepository interface {
	Add(ctx context.Context, item *order.Item) error
	Update(ctx context.Context, item *order.Item) error
	Get(ctx context.Context, id kernel.UUID) (*order.Item, error)
}
