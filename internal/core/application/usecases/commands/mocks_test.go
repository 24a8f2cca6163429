package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"kiosk/internal/core/application/usecases/commands"
	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/menu"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/ports"
	"kiosk/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTokenForUpdate(ctx context.Context, token string) (*order.Order, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotificationGateway struct{ mock.Mock }

func (m *MockNotificationGateway) NotifyReady(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type stubMenu map[string]menu.Product

func newStubMenu(t *testing.T) stubMenu {
	t.Helper()
	products := []struct {
		id, category, name, price string
		available                 bool
	}{
		{"latte", "coffee", "Latte", "5", true},
		{"medialuna", "bakery", "Medialuna", "3", true},
		{"alfajor", "bakery", "Alfajor", "2.50", false},
	}
	m := stubMenu{}
	for _, p := range products {
		product, err := menu.NewProduct(p.id, p.category, p.name, kernel.MustMoney(p.price), p.available)
		require.NoError(t, err)
		m[p.id] = product
	}
	return m
}

func (m stubMenu) Product(id string) (menu.Product, error) {
	p, ok := m[id]
	if !ok {
		return menu.Product{}, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

func (m stubMenu) Products() []menu.Product {
	products := make([]menu.Product, 0, len(m))
	for _, p := range m {
		products = append(products, p)
	}
	return products
}

var placedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newQueuedOrder(t *testing.T, tier order.Tier) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewToken(placedAt), tier, []order.LineSpec{
		{ProductID: "latte", Name: "Latte", UnitPrice: kernel.MustMoney("5"), Quantity: 1},
	}, placedAt)
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

// fakeStore keeps committed orders and hands out copies, so uncommitted changes
// of one unit of work are never visible to another.
type fakeStore struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newFakeStore(orders ...*order.Order) *fakeStore {
	s := &fakeStore{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		s.orders[o.Token().String()] = o
	}
	return s
}

func (s *fakeStore) load(token string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[token]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", token)
	}
	return order.RestoreOrder(o.ID(), o.Token(), o.Tier(), o.Status(), o.Total(),
		o.CreatedAt(), o.UpdatedAt(), o.Sequence(), o.Items())
}

func (s *fakeStore) status(token string) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[token].Status()
}

func (s *fakeStore) Create() commands.OrderUoW {
	return &fakeUoW{store: s}
}

type fakeUoW struct {
	store   *fakeStore
	pending []*order.Order
}

func (u *fakeUoW) Begin(context.Context) error { return nil }

func (u *fakeUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, o := range u.pending {
		u.store.orders[o.Token().String()] = o
	}
	u.pending = nil
	return nil
}

func (u *fakeUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository {
	return fakeRepo{uow: u}
}

type fakeRepo struct {
	ports.OrderRepository
	uow *fakeUoW
}

func (r fakeRepo) GetByTokenForUpdate(_ context.Context, token string) (*order.Order, error) {
	return r.uow.store.load(token)
}

func (r fakeRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.pending = append(r.uow.pending, o)
	return nil
}
