package commands_test

import (
	"context"
	"time"

	"salesorder/internal/core/application/usecases/commands"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/core/domain/model/product"
	"salesorder/internal/core/domain/model/user"
	"salesorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Return values may be given either directly or as a func of the looked up
// id, for lookups of rows the handler creates itself.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id), id)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return orderResult(m.Called(ctx, id), id)
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

func orderResult(args mock.Arguments, id kernel.UUID) (*order.Order, error) {
	if fn, ok := args.Get(0).(func(kernel.UUID) (*order.Order, error)); ok {
		return fn(id)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Add(ctx context.Context, item *order.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockOrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*order.Item, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(kernel.UUID) (*order.Item, error)); ok {
		return fn(id)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Item), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return productResult(m.Called(ctx, id), id)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return productResult(m.Called(ctx, id), id)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func productResult(args mock.Arguments, id kernel.UUID) (*product.Product, error) {
	if fn, ok := args.Get(0).(func(kernel.UUID) (*product.Product, error)); ok {
		return fn(id)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []int64, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

// MockUoW satisfies both OrderUoW and OutboxUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	return m.Called().Get(0).(ports.OrderItemRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (bool, string, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	return m.Called(ctx, messages).Error(0)
}

// repos bundles the mocks behind one MockUoW.
type repos struct {
	uow      *MockUoW
	orders   *MockOrderRepository
	items    *MockOrderItemRepository
	products *MockProductRepository
	users    *MockUserRepository
	outbox   *MockOutboxRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		items:    new(MockOrderItemRepository),
		products: new(MockProductRepository),
		users:    new(MockUserRepository),
		outbox:   new(MockOutboxRepository),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("OrderItemRepository").Return(r.items).Maybe()
	r.uow.On("ProductRepository").Return(r.products).Maybe()
	r.uow.On("UserRepository").Return(r.users).Maybe()
	r.uow.On("OutboxRepository").Return(r.outbox).Maybe()
	return r
}

func (r repos) factory() *MockOrderUoWFactory {
	f := new(MockOrderUoWFactory)
	f.On("Create").Return(r.uow)
	return f
}

func (r repos) assertExpectations(t mock.TestingT) {
	r.uow.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.items.AssertExpectations(t)
	r.products.AssertExpectations(t)
	r.users.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
}
