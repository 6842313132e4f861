package queries

import (
	"context"
	"errors"

	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/user"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/result"
)

const (
	msgOrdersRetrieved = "orders retrieved"
	msgOrderRetrieved  = "order retrieved"
	msgUserNotFound    = "user not found"
	msgOrderNotFound   = "order not found"
	msgInvalidRole     = "invalid user role"
	msgNotOwnOrder     = "order belongs to another user"
)

// ListOrdersQueryHandler returns every order to Admin and Seller callers and
// only their own orders to Client callers. Any other role is refused.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(readersFactory)
//	query, err := NewListOrdersQuery(callerID, nil, nil, nil)
//	if err != nil {
//	    return err
//	}
//
//	res := handler.Handle(ctx, query)
//	if res.IsSuccess() {
//	    fmt.Printf("%d orders visible\n", len(res.Data()))
//	}
type ListOrdersQueryHandler struct {
	readers ReadersFactory
}

// NewListOrdersQueryHandler creates a handler for role scoped order listing.
// Requires a ReadersFactory providing the order, product and user repositories.
func NewListOrdersQueryHandler(readers ReadersFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readers: readers}
}

// Handle executes the listing for the caller.
// Returns NotFound for an unknown caller and BadRequest for a role outside
// Admin, Seller and Client. Orders are sorted by order date, then id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, q ListOrdersQuery) result.Result[[]OrderView] {
	if err := q.Validate(); err != nil {
		return result.FromError[[]OrderView](err)
	}

	r := h.readers.Create()

	caller, err := r.UserRepository().Get(ctx, q.CallerID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return result.Failure[[]OrderView](msgUserNotFound, result.NotFound)
		}
		return result.FromError[[]OrderView](err)
	}

	orders := r.OrderRepository()
	switch role := caller.Role(); {
	case role.SeesAllOrders():
		found, getErr := orders.GetAllWithItems(ctx, q.Filter())
		if getErr != nil {
			return result.FromError[[]OrderView](getErr)
		}
		return viewsResult(ctx, r, found)
	case role == user.Client:
		found, getErr := orders.GetByCreator(ctx, caller.ID(), q.Filter())
		if getErr != nil {
			return result.FromError[[]OrderView](getErr)
		}
		return viewsResult(ctx, r, found)
	default:
		return result.Failure[[]OrderView](msgInvalidRole, result.BadRequest)
	}
}

func viewsResult(ctx context.Context, r Readers, found []*order.Order) result.Result[[]OrderView] {
	views, err := toViews(ctx, r.ProductRepository(), found)
	if err != nil {
		return result.FromError[[]OrderView](err)
	}
	return result.Success(views, msgOrdersRetrieved, result.OK)
}
