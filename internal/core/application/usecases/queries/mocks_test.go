package queries_test

import (
	"context"

	"salesorder/internal/core/application/usecases/queries"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/model/user"
	"salesorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
	ports.OrderRepository
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithItems(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCreator(
	ctx context.Context,
	createdBy kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	args := m.Called(ctx, createdBy, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
	ports.ProductRepository
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
	ports.UserRepository
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type mockReaders struct {
	orders   *MockOrderRepository
	products *MockProductRepository
	users    *MockUserRepository
}

func newReaders() *mockReaders {
	return &mockReaders{
		orders:   new(MockOrderRepository),
		products: new(MockProductRepository),
		users:    new(MockUserRepository),
	}
}

func (r *mockReaders) OrderRepository() ports.OrderRepository     { return r.orders }
func (r *mockReaders) ProductRepository() ports.ProductRepository { return r.products }
func (r *mockReaders) UserRepository() ports.UserRepository       { return r.users }

func (r *mockReaders) Create() queries.Readers { return r }

func (r *mockReaders) assertExpectations(t mock.TestingT) {
	r.orders.AssertExpectations(t)
	r.products.AssertExpectations(t)
	r.users.AssertExpectations(t)
}
