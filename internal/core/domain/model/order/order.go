package order

import (
	"errors"
	"slices"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/ddd"
	"salesorder/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the sales order aggregate root. It owns its items and keeps
// totalAmount equal to the sum of their total prices.
type Order struct {
	id          kernel.UUID
	createdBy   kernel.UUID
	orderDate   time.Time
	status      Status
	actionedBy  *kernel.UUID
	actionedAt  *time.Time
	totalAmount kernel.Money
	items       []*Item

	events        []ddd.Event
	isConstructed bool
}

// NewOrder creates an empty order shell in Created status with a zero total.
// Items are persisted separately and the order is finished with CompleteCreation.
func NewOrder(id, createdBy kernel.UUID, orderDate time.Time) (*Order, error) {
	o := &Order{
		status:        Created,
		totalAmount:   kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		validateID("order id", id),
		validateID("created by", createdBy),
		o.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.createdBy = createdBy
	return o, nil
}

// RestoreOrder rebuilds a persisted order. The stored total is kept as is;
// callers that need it consistent with items call RecalculateTotal.
func RestoreOrder(
	id, createdBy kernel.UUID,
	orderDate time.Time,
	status Status,
	actionedBy *kernel.UUID,
	actionedAt *time.Time,
	totalAmount kernel.Money,
	items []*Item,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		validateID("order id", id),
		validateID("created by", createdBy),
		o.setOrderDate(orderDate),
		status.Validate(),
		totalAmount.Validate(),
		validateActioned(actionedBy, actionedAt),
		validateItems(id, items),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.createdBy = createdBy
	o.status = status
	o.actionedBy = actionedBy
	o.actionedAt = actionedAt
	o.totalAmount = totalAmount
	o.items = items
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) CreatedBy() kernel.UUID    { return o.createdBy }
func (o *Order) OrderDate() time.Time      { return o.orderDate }
func (o *Order) Status() Status            { return o.status }
func (o *Order) ActionedBy() *kernel.UUID  { return o.actionedBy }
func (o *Order) ActionedAt() *time.Time    { return o.actionedAt }
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// Items returns the lines in position order. The slice is a copy.
func (o *Order) Items() []*Item {
	return slices.Clone(o.items)
}

// RecalculateTotal sets totalAmount to the sum of the loaded items.
func (o *Order) RecalculateTotal() {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	o.totalAmount = total
}

// CompleteCreation finalises a freshly created order whose items have been
// loaded: it requires at least one item, derives the total and records
// CreatedEvent.
func (o *Order) CompleteCreation(at time.Time) error {
	if o.status != Created {
		return errs.NewValueIsInvalidError("order creation is already complete")
	}
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	o.RecalculateTotal()
	o.record(&CreatedEvent{
		ID:          uuid.New(),
		OrderID:     o.id.Bytes(),
		CreatedBy:   o.createdBy.Bytes(),
		OrderDate:   o.orderDate,
		TotalAmount: o.totalAmount.String(),
		ItemCount:   len(o.items),
		OccurredAt:  at.UTC(),
	})
	return nil
}

// ValidateCanBeActioned reports ErrOrderIsAlreadyApproved or ErrOrderIsRejected
// for final orders.
func (o *Order) ValidateCanBeActioned() error {
	return o.status.ValidateCanBeActioned()
}

// Action moves the order to target and stamps who did it and when.
func (o *Order) Action(target Status, actor kernel.UUID, at time.Time) error {
	if err := validateID("actioned by", actor); err != nil {
		return err
	}

	next, err := o.status.Action(target)
	if err != nil {
		return err
	}

	at = at.UTC()
	previous := o.status
	o.status = next
	o.actionedBy = &actor
	o.actionedAt = &at

	o.record(&StatusChangedEvent{
		ID:         uuid.New(),
		OrderID:    o.id.Bytes(),
		From:       previous.String(),
		To:         next.String(),
		ActionedBy: actor.Bytes(),
		OccurredAt: at,
	})
	return nil
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []ddd.Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(e ddd.Event) {
	o.events = append(o.events, e)
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate.UTC()
	return nil
}

func validateActioned(by *kernel.UUID, at *time.Time) error {
	if (by == nil) != (at == nil) {
		return errs.NewValueIsInvalidError("actioned by and actioned at must be set together")
	}
	if by != nil {
		return validateID("actioned by", *by)
	}
	return nil
}

func validateItems(orderID kernel.UUID, items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(orderID) {
			return errs.NewValueIsInvalidError("item " + item.ID().String() + " belongs to another order")
		}
	}
	return nil
}
