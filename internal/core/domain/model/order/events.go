package order

import (
	"time"

	"salesorder/internal/pkg/ddd"

	"github.com/google/uuid"
)

const (
	CreatedEventName       = "OrderCreated"
	StatusChangedEventName = "OrderStatusChanged"
)

var (
	_ ddd.Event = (*CreatedEvent)(nil)
	_ ddd.Event = (*StatusChangedEvent)(nil)
)

// CreatedEvent is recorded once an order and all of its items are persisted.
type CreatedEvent struct {
	ID          uuid.UUID `json:"eventId"`
	OrderID     uuid.UUID `json:"orderId"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	OrderDate   time.Time `json:"orderDate"`
	TotalAmount string    `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (e *CreatedEvent) EventID() uuid.UUID     { return e.ID }
func (e *CreatedEvent) EventName() string      { return CreatedEventName }
func (e *CreatedEvent) AggregateID() uuid.UUID { return e.OrderID }

// StatusChangedEvent is recorded on every successful action, including a
// failed reservation that moves the order to InsufficientProducts.
type StatusChangedEvent struct {
	ID         uuid.UUID `json:"eventId"`
	OrderID    uuid.UUID `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActionedBy uuid.UUID `json:"actionedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e *StatusChangedEvent) EventID() uuid.UUID     { return e.ID }
func (e *StatusChangedEvent) EventName() string      { return StatusChangedEventName }
func (e *StatusChangedEvent) AggregateID() uuid.UUID { return e.OrderID }
