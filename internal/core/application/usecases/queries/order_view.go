package queries

import (
	"context"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/ports"
)

// OrderView is the read model returned by order queries.
type OrderView struct {
	ID          kernel.UUID
	Status      order.Status
	CreatedBy   kernel.UUID
	OrderDate   time.Time
	ActionedBy  *kernel.UUID
	ActionedAt  *time.Time
	TotalAmount kernel.Money
	Items       []OrderItemView
}

type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
	TotalPrice  kernel.Money
}

// toViews resolves product names with one lookup for all orders. A product
// that no longer exists leaves its name empty.
func toViews(ctx context.Context, products ports.ProductRepository, orders []*order.Order) ([]OrderView, error) {
	seen := make(map[kernel.UUID]struct{})
	ids := make([]kernel.UUID, 0)
	for _, o := range orders {
		for _, it := range o.Items() {
			if _, ok := seen[it.ProductID()]; !ok {
				seen[it.ProductID()] = struct{}{}
				ids = append(ids, it.ProductID())
			}
		}
	}

	names := make(map[kernel.UUID]string, len(ids))
	if len(ids) > 0 {
		found, err := products.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			names[p.ID()] = p.Name()
		}
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{
			ID:          o.ID(),
			Status:      o.Status(),
			CreatedBy:   o.CreatedBy(),
			OrderDate:   o.OrderDate(),
			ActionedBy:  o.ActionedBy(),
			ActionedAt:  o.ActionedAt(),
			TotalAmount: o.TotalAmount(),
			Items:       make([]OrderItemView, 0, len(o.Items())),
		}
		for _, it := range o.Items() {
			view.Items = append(view.Items, OrderItemView{
				ID:          it.ID(),
				ProductID:   it.ProductID(),
				ProductName: names[it.ProductID()],
				Quantity:    it.Quantity(),
				UnitPrice:   it.UnitPrice(),
				TotalPrice:  it.TotalPrice(),
			})
		}
		views = append(views, view)
	}
	return views, nil
}
