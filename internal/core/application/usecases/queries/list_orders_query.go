package queries

import (
	"errors"
	"fmt"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/ports"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to callerID, optionally narrowed
// by status and an inclusive order date range.
type ListOrdersQuery struct {
	callerID kernel.UUID
	filter   ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query for callerID.
// status, from and to are optional filters; from must not be after to.
func NewListOrdersQuery(callerID kernel.UUID, status *order.Status, from, to *time.Time) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := callerID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("caller id", err)
	}
	q.callerID = callerID

	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		q.filter.Status = &s
	}
	if from != nil && to != nil && from.After(*to) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}
	if from != nil {
		f := from.UTC()
		q.filter.From = &f
	}
	if to != nil {
		t := to.UTC()
		q.filter.To = &t
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CallerID returns the user whose role scopes the listing.
func (q ListOrdersQuery) CallerID() kernel.UUID {
	return q.callerID
}

// Filter returns the optional status and date range.
func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
