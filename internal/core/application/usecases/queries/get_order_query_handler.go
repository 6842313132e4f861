package queries

import (
	"context"
	"errors"

	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/result"
)

// GetOrderQueryHandler returns a single order under the same visibility rule
// as ListOrdersQueryHandler: a Client may only read its own orders.
type GetOrderQueryHandler struct {
	readers ReadersFactory
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(readers ReadersFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

// Handle loads the order with its items and product names.
// Returns NotFound for an unknown caller or order and Forbidden when a Client
// asks for another user's order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, q GetOrderQuery) result.Result[OrderView] {
	if err := q.Validate(); err != nil {
		return result.FromError[OrderView](err)
	}

	r := h.readers.Create()

	caller, err := r.UserRepository().Get(ctx, q.CallerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return result.Failure[OrderView](msgUserNotFound, result.NotFound)
		}
		return result.FromError[OrderView](err)
	}
	if !caller.Role().IsKnown() {
		return result.Failure[OrderView](msgInvalidRole, result.BadRequest)
	}

	o, err := r.OrderRepository().Get(ctx, q.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return result.Failure[OrderView](msgOrderNotFound, result.NotFound)
		}
		return result.FromError[OrderView](err)
	}

	if !caller.Role().SeesAllOrders() && !o.CreatedBy().IsEqual(caller.ID()) {
		return result.Failure[OrderView](msgNotOwnOrder, result.Forbidden)
	}

	views, err := toViews(ctx, r.ProductRepository(), []*order.Order{o})
	if err != nil {
		return result.FromError[OrderView](err)
	}
	return result.Success(views[0], msgOrderRetrieved, result.OK)
}
