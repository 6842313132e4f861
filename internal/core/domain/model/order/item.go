package order

import (
	"errors"
	"fmt"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is an order line. Its total price is always derived from quantity and
// unit price.
type Item struct {
	id        kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID
	position  int
	quantity  int
	unitPrice kernel.Money

	isConstructed bool
}

// NewItem builds a line for orderID. position orders the lines within the order.
func NewItem(
	id, orderID, productID kernel.UUID,
	position, quantity int,
	unitPrice kernel.Money,
) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		validateID("item id", id),
		validateID("order id", orderID),
		validateID("product id", productID),
		item.setPosition(position),
		item.setQuantity(quantity),
		unitPrice.Validate(),
	); err != nil {
		return nil, err
	}

	item.id = id
	item.orderID = orderID
	item.productID = productID
	item.unitPrice = unitPrice
	return item, nil
}

// RestoreItem rebuilds a persisted line. It applies the same rules as NewItem.
func RestoreItem(
	id, orderID, productID kernel.UUID,
	position, quantity int,
	unitPrice kernel.Money,
) (*Item, error) {
	return NewItem(id, orderID, productID, position, quantity, unitPrice)
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID        { return i.id }
func (i *Item) OrderID() kernel.UUID   { return i.orderID }
func (i *Item) ProductID() kernel.UUID { return i.productID }
func (i *Item) Position() int          { return i.position }
func (i *Item) Quantity() int          { return i.quantity }
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice is quantity × unit price.
func (i *Item) TotalPrice() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *Item) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsOutOfRangeError("position", position, 0, "unbounded")
	}
	i.position = position
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
