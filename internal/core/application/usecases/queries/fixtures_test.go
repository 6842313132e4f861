package queries_test

import (
	"testing"
	"time"

	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "someone", role)
	require.NoError(t, err)
	return u
}

func newProduct(t *testing.T, name string) *product.Product {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("4.00"))
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), name, price, 10)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, createdBy kernel.UUID, products ...*product.Product) *order.Order {
	t.Helper()
	id := kernel.NewUUID()
	items := make([]*order.Item, 0, len(products))
	for i, p := range products {
		item, err := order.RestoreItem(kernel.NewUUID(), id, p.ID(), i, 2, p.Price())
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.RestoreOrder(id, createdBy, time.Now(), order.Created, nil, nil, kernel.ZeroMoney(), items)
	require.NoError(t, err)
	o.RecalculateTotal()
	return o
}
