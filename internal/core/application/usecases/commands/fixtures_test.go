package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/model/user"
	"salesorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "user-"+role.String(), role)
	require.NoError(t, err)
	return u
}

func newProduct(t *testing.T, name, price string, stock int) *product.Product {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(price))
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), name, m, stock)
	require.NoError(t, err)
	return p
}

// copyProduct returns a fresh instance with the same state, as a new
// transaction would load it.
func copyProduct(t *testing.T, p *product.Product) *product.Product {
	t.Helper()
	c, err := product.RestoreProduct(p.ID(), p.Name(), p.Price(), p.Quantity(), p.Version())
	require.NoError(t, err)
	return c
}

type line struct {
	product *product.Product
	qty     int
}

func newOrder(t *testing.T, status order.Status, createdBy kernel.UUID, lines ...line) *order.Order {
	t.Helper()
	orderID := kernel.NewUUID()
	items := make([]*order.Item, 0, len(lines))
	total := kernel.ZeroMoney()
	for i, l := range lines {
		item, err := order.RestoreItem(kernel.NewUUID(), orderID, l.product.ID(), i, l.qty, l.product.Price())
		require.NoError(t, err)
		items = append(items, item)
		total = total.Add(item.TotalPrice())
	}
	o, err := order.RestoreOrder(orderID, createdBy, time.Now(), status, nil, nil, total, items)
	require.NoError(t, err)
	return o
}

// copyOrder reloads o with the same state and items.
func copyOrder(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	c, err := order.RestoreOrder(o.ID(), o.CreatedBy(), o.OrderDate(), o.Status(), o.ActionedBy(), o.ActionedAt(), o.TotalAmount(), o.Items())
	require.NoError(t, err)
	return c
}

func itemByID(o *order.Order) func(kernel.UUID) (*order.Item, error) {
	return func(id kernel.UUID) (*order.Item, error) {
		for _, it := range o.Items() {
			if it.ID().IsEqual(id) {
				return it, nil
			}
		}
		return nil, errs.NewObjectNotFoundError("item", id.String())
	}
}
