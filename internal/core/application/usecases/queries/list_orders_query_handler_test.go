package queries_test

import (
	"errors"
	"testing"
	"time"

	"salesorder/internal/core/application/usecases/queries"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/model/user"
	"salesorder/internal/core/ports"
	"salesorder/internal/pkg/errs"
	"salesorder/internal/pkg/result"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listQuery(t *testing.T, caller kernel.UUID) queries.ListOrdersQuery {
	t.Helper()
	q, err := queries.NewListOrdersQuery(caller, nil, nil, nil)
	require.NoError(t, err)
	return q
}

func TestListOrdersQueryHandler_Handle_PrivilegedRolesSeeEverything(t *testing.T) {
	for _, role := range []user.Role{user.Admin, user.Seller} {
		t.Run(role.String(), func(t *testing.T) {
			ctx := t.Context()
			caller := newUser(t, role)
			widget := newProduct(t, "Widget")
			all := []*order.Order{newOrder(t, kernel.NewUUID(), widget), newOrder(t, kernel.NewUUID())}
			r := newReaders()
			r.users.On("Get", ctx, caller.ID()).Return(caller, nil).Once()
			r.orders.On("GetAllWithItems", ctx, ports.OrderFilter{}).Return(all, nil).Once()
			r.products.On("GetMany", ctx, []kernel.UUID{widget.ID()}).Return([]*product.Product{widget}, nil).Once()

			res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, caller.ID()))

			require.True(t, res.IsSuccess())
			assert.Equal(t, result.OK, res.Status())
			require.Len(t, res.Data(), 2)
			first := res.Data()[0]
			assert.True(t, first.ID.IsEqual(all[0].ID()))
			assert.Equal(t, "8.00", first.TotalAmount.String())
			require.Len(t, first.Items, 1)
			assert.Equal(t, "Widget", first.Items[0].ProductName)
			assert.Equal(t, "8.00", first.Items[0].TotalPrice.String())
			assert.Empty(t, res.Data()[1].Items)
			r.orders.AssertNotCalled(t, "GetByCreator", mock.Anything, mock.Anything, mock.Anything)
			r.assertExpectations(t)
		})
	}
}

func TestListOrdersQueryHandler_Handle_ClientSeesOwnOrders(t *testing.T) {
	ctx := t.Context()
	client := newUser(t, user.Client)
	own := []*order.Order{newOrder(t, client.ID())}
	r := newReaders()
	r.users.On("Get", ctx, client.ID()).Return(client, nil).Once()
	r.orders.On("GetByCreator", ctx, client.ID(), ports.OrderFilter{}).Return(own, nil).Once()

	res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, client.ID()))

	require.True(t, res.IsSuccess())
	require.Len(t, res.Data(), 1)
	assert.True(t, res.Data()[0].CreatedBy.IsEqual(client.ID()))
	r.orders.AssertNotCalled(t, "GetAllWithItems", mock.Anything, mock.Anything)
	r.products.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestListOrdersQueryHandler_Handle_EmptyListIsNotNil(t *testing.T) {
	ctx := t.Context()
	client := newUser(t, user.Client)
	r := newReaders()
	r.users.On("Get", ctx, client.ID()).Return(client, nil).Once()
	r.orders.On("GetByCreator", ctx, client.ID(), ports.OrderFilter{}).Return([]*order.Order{}, nil).Once()

	res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, client.ID()))

	require.True(t, res.IsSuccess())
	assert.NotNil(t, res.Data())
	assert.Empty(t, res.Data())
}

func TestListOrdersQueryHandler_Handle_UnknownRole(t *testing.T) {
	ctx := t.Context()
	other := newUser(t, user.Role(9))
	r := newReaders()
	r.users.On("Get", ctx, other.ID()).Return(other, nil).Once()

	res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, other.ID()))

	assert.False(t, res.IsSuccess())
	assert.Nil(t, res.Data())
	assert.Equal(t, result.BadRequest, res.Status())
	assert.Equal(t, "invalid user role", res.Message())
	r.orders.AssertNotCalled(t, "GetAllWithItems", mock.Anything, mock.Anything)
	r.orders.AssertNotCalled(t, "GetByCreator", mock.Anything, mock.Anything, mock.Anything)
}

func TestListOrdersQueryHandler_Handle_Failures(t *testing.T) {
	t.Run("caller not found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		r := newReaders()
		r.users.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("user", id.String())).Once()

		res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, id))

		assert.Equal(t, result.NotFound, res.Status())
		assert.Equal(t, "user not found", res.Message())
	})

	t.Run("store fault", func(t *testing.T) {
		ctx := t.Context()
		admin := newUser(t, user.Admin)
		r := newReaders()
		r.users.On("Get", ctx, admin.ID()).Return(admin, nil).Once()
		r.orders.On("GetAllWithItems", ctx, ports.OrderFilter{}).Return(nil, errors.New("db gone")).Once()

		res := queries.NewListOrdersQueryHandler(r).Handle(ctx, listQuery(t, admin.ID()))

		assert.Equal(t, result.InternalServerError, res.Status())
		assert.Equal(t, "db gone", res.Message())
	})

	t.Run("unconstructed query", func(t *testing.T) {
		res := queries.NewListOrdersQueryHandler(newReaders()).Handle(t.Context(), queries.ListOrdersQuery{})

		assert.False(t, res.IsSuccess())
	})
}

func TestListOrdersQueryHandler_Handle_PassesFilter(t *testing.T) {
	ctx := t.Context()
	seller := newUser(t, user.Seller)
	status := order.Approved
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	q, err := queries.NewListOrdersQuery(seller.ID(), &status, &from, &to)
	require.NoError(t, err)

	r := newReaders()
	r.users.On("Get", ctx, seller.ID()).Return(seller, nil).Once()
	r.orders.On("GetAllWithItems", ctx, mock.MatchedBy(func(f ports.OrderFilter) bool {
		return f.Status != nil && *f.Status == order.Approved && f.From.Equal(from) && f.To.Equal(to)
	})).Return([]*order.Order{}, nil).Once()

	res := queries.NewListOrdersQueryHandler(r).Handle(ctx, q)

	require.True(t, res.IsSuccess())
	r.assertExpectations(t)
}

func TestNewListOrdersQuery(t *testing.T) {
	caller := kernel.NewUUID()
	from := time.Now()
	to := from.Add(-time.Hour)

	_, err := queries.NewListOrdersQuery(caller, nil, &from, &to)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	bad := order.Unknown
	_, err = queries.NewListOrdersQuery(caller, &bad, nil, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewListOrdersQuery(kernel.UUID{}, nil, nil, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}
