package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/guard"

	"github.com/google/uuid"
)

const maxIdempotencyKeyLength = 255

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand asks for a new order with the given lines. Unit prices
// are taken from the product catalog, never from the request.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	createdBy      kernel.UUID
	orderDate      time.Time
	items          []ItemRequest
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. idempotencyKey may be empty.
func NewCreateOrderCommand(
	createdBy kernel.UUID,
	orderDate time.Time,
	items []ItemRequest,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCreatedBy(createdBy),
		cmd.setOrderDate(orderDate),
		cmd.setItems(items),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CreatedBy returns the id of the user placing the order.
func (c CreateOrderCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

// OrderDate returns the order date in UTC.
func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// Items returns a copy of the requested lines in request order.
func (c CreateOrderCommand) Items() []ItemRequest {
	items := make([]ItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

// IdempotencyKey returns the client supplied key, or an empty string.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// Fingerprint identifies the request body: the creator and the requested
// lines in order. The order date is left out because it defaults to the time
// of each attempt when the client omits it.
func (c CreateOrderCommand) Fingerprint() string {
	var b strings.Builder
	b.WriteString(c.createdBy.String())
	for _, item := range c.items {
		b.WriteByte(';')
		b.WriteString(item.ProductID.String())
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(item.Quantity))
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String())).String()
}

func (c *CreateOrderCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("created by", err)
	}
	c.createdBy = createdBy
	return nil
}

func (c *CreateOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	c.orderDate = orderDate.UTC()
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var itemErrs []error
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			itemErrs = append(itemErrs, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].productId", i), err))
		}
		if item.Quantity <= 0 {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = make([]ItemRequest, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
