package commands

import (
	"errors"
	"fmt"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/guard"
)

var ErrActionOrderCommandIsNotConstructed = errors.New(
	"ActionOrderCommand must be created via NewActionOrderCommand constructor",
)

// ActionOrderCommand approves or rejects an order on behalf of actorID.
type ActionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewActionOrderCommand accepts Approved or Rejected as target.
func NewActionOrderCommand(orderID, actorID kernel.UUID, target order.Status) (ActionOrderCommand, error) {
	cmd := ActionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
	); err != nil {
		return ActionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrActionOrderCommandIsNotConstructed if validation fails.
func (c ActionOrderCommand) Validate() error {
	return c.guard.Validate(ErrActionOrderCommandIsNotConstructed)
}

// OrderID returns the order being actioned.
func (c ActionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user performing the action.
func (c ActionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the requested status, Approved or Rejected.
func (c ActionOrderCommand) Target() order.Status {
	return c.target
}

func (c *ActionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *ActionOrderCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actorID = id
	return nil
}

func (c *ActionOrderCommand) setTarget(target order.Status) error {
	if target != order.Approved && target != order.Rejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not an allowed action, use Approved or Rejected", target),
		)
	}
	c.target = target
	return nil
}
