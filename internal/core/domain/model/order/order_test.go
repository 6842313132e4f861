package order_test

import (
	"testing"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(s))
	require.NoError(t, err)
	return m
}

type line struct {
	qty   int
	price string
}

func restoreWithItems(t *testing.T, status order.Status, lines ...line) *order.Order {
	t.Helper()
	orderID := kernel.NewUUID()
	items := make([]*order.Item, 0, len(lines))
	for i, l := range lines {
		item, err := order.RestoreItem(kernel.NewUUID(), orderID, kernel.NewUUID(), i, l.qty, money(t, l.price))
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(orderID, kernel.NewUUID(), time.Now(), status, nil, nil, kernel.ZeroMoney(), items)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	creator := kernel.NewUUID()
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	t.Run("creates an empty shell", func(t *testing.T) {
		o, err := order.NewOrder(id, creator, date)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CreatedBy().IsEqual(creator))
		assert.Equal(t, time.UTC, o.OrderDate().Location())
		assert.True(t, o.OrderDate().Equal(date))
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.ActionedBy())
		assert.Nil(t, o.ActionedAt())
		assert.Equal(t, "0.00", o.TotalAmount().String())
		assert.Empty(t, o.Items())
	})

	t.Run("joins every validation error", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "order id")
		assert.Contains(t, err.Error(), "created by")
		assert.Contains(t, err.Error(), "order date")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rejects items of another order", func(t *testing.T) {
		foreign, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, 1, money(t, "1"))
		require.NoError(t, err)

		_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), order.Created, nil, nil, kernel.ZeroMoney(), []*order.Item{foreign})

		assert.ErrorContains(t, err, "belongs to another order")
	})

	t.Run("requires actioned fields together", func(t *testing.T) {
		actor := kernel.NewUUID()

		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), order.Approved, &actor, nil, kernel.ZeroMoney(), nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), order.Unknown, nil, nil, kernel.ZeroMoney(), nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_CompleteCreation(t *testing.T) {
	t.Run("derives the total from items and records an event", func(t *testing.T) {
		o := restoreWithItems(t, order.Created, line{2, "10.00"}, line{1, "5.50"})

		require.NoError(t, o.CompleteCreation(time.Now()))

		assert.Equal(t, "25.50", o.TotalAmount().String())
		events := o.PullEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*order.CreatedEvent)
		require.True(t, ok)
		assert.Equal(t, order.CreatedEventName, created.EventName())
		assert.Equal(t, o.ID().Bytes(), created.AggregateID())
		assert.Equal(t, "25.50", created.TotalAmount)
		assert.Equal(t, 2, created.ItemCount)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		o := restoreWithItems(t, order.Created)

		err := o.CompleteCreation(time.Now())

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("is refused once the order was actioned", func(t *testing.T) {
		o := restoreWithItems(t, order.Rejected, line{1, "1"})

		assert.ErrorIs(t, o.CompleteCreation(time.Now()), errs.ErrValueIsInvalid)
	})
}

func TestOrder_RecalculateTotalOverridesStoredValue(t *testing.T) {
	orderID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), orderID, kernel.NewUUID(), 0, 3, money(t, "2.10"))
	require.NoError(t, err)
	o, err := order.RestoreOrder(orderID, kernel.NewUUID(), time.Now(), order.Created, nil, nil, money(t, "999"), []*order.Item{item})
	require.NoError(t, err)

	o.RecalculateTotal()

	assert.Equal(t, "6.30", o.TotalAmount().String())
}

func TestOrder_Action(t *testing.T) {
	actor := kernel.NewUUID()
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	t.Run("approves a created order", func(t *testing.T) {
		o := restoreWithItems(t, order.Created, line{1, "1"})

		require.NoError(t, o.Action(order.Approved, actor, at))

		assert.Equal(t, order.Approved, o.Status())
		require.NotNil(t, o.ActionedBy())
		assert.True(t, o.ActionedBy().IsEqual(actor))
		assert.Equal(t, at, *o.ActionedAt())

		events := o.PullEvents()
		require.Len(t, events, 1)
		changed := events[0].(*order.StatusChangedEvent)
		assert.Equal(t, "Created", changed.From)
		assert.Equal(t, "Approved", changed.To)
		assert.Equal(t, actor.Bytes(), changed.ActionedBy)
	})

	t.Run("insufficient products can be actioned again", func(t *testing.T) {
		o := restoreWithItems(t, order.Created, line{1, "1"})
		require.NoError(t, o.Action(order.InsufficientProducts, actor, at))

		require.NoError(t, o.Action(order.Rejected, actor, at))

		assert.Equal(t, order.Rejected, o.Status())
		assert.Len(t, o.PullEvents(), 2)
	})

	t.Run("approved order cannot be actioned", func(t *testing.T) {
		o := restoreWithItems(t, order.Approved)

		err := o.Action(order.Rejected, actor, at)

		assert.ErrorIs(t, err, order.ErrOrderIsAlreadyApproved)
		assert.Equal(t, order.Approved, o.Status())
		assert.Nil(t, o.ActionedBy())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("rejected order cannot be actioned", func(t *testing.T) {
		o := restoreWithItems(t, order.Rejected)

		assert.ErrorIs(t, o.ValidateCanBeActioned(), order.ErrOrderIsRejected)
		assert.ErrorIs(t, o.Action(order.Approved, actor, at), order.ErrOrderIsRejected)
	})

	t.Run("requires an actor", func(t *testing.T) {
		o := restoreWithItems(t, order.Created)

		assert.ErrorIs(t, o.Action(order.Approved, kernel.UUID{}, at), errs.ErrValueIsRequired)
		assert.Equal(t, order.Created, o.Status())
	})
}

func TestOrder_ItemsReturnsCopy(t *testing.T) {
	o := restoreWithItems(t, order.Created, line{1, "1"})

	items := o.Items()
	items[0] = nil

	assert.NotNil(t, o.Items()[0])
}

func TestOrder_ValidateZeroValue(t *testing.T) {
	var o *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}
