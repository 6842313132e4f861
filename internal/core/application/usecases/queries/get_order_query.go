package queries

import (
	"errors"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	callerID kernel.UUID
	orderID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order on behalf of callerID.
// Returns an error if either id is empty.
func NewGetOrderQuery(callerID, orderID kernel.UUID) (GetOrderQuery, error) {
	var callerErr, orderErr error
	if err := callerID.Validate(); err != nil {
		callerErr = errs.NewValueIsRequiredErrorWithCause("caller id", err)
	}
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := errors.Join(callerErr, orderErr); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{callerID: callerID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// CallerID returns the user asking for the order.
func (q GetOrderQuery) CallerID() kernel.UUID {
	return q.callerID
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
