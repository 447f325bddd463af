package commands_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextOrderID(ctx context.Context) (kernel.OrderID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.OrderID), args.Error(1)
}

func (m *MockOrderRepository) InsertLineItem(ctx context.Context, id kernel.OrderID, item string, qty int) error {
	args := m.Called(ctx, id, item, qty)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertTracking(ctx context.Context, id kernel.OrderID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) GetStatus(ctx context.Context, id kernel.OrderID) (order.Status, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Status), args.Error(1)
}

func (m *MockOrderRepository) GetTotal(ctx context.Context, id kernel.OrderID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
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

// fakeOrderStore is an in-memory order repository shared by every unit of
// work it creates. Writes are visible immediately; Commit and Rollback are
// no-ops.
type fakeOrderStore struct {
	mu       sync.Mutex
	lastID   kernel.OrderID
	lines    map[kernel.OrderID]map[string]int
	tracking map[kernel.OrderID]order.Status
	prices   map[string]decimal.Decimal
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		lines:    make(map[kernel.OrderID]map[string]int),
		tracking: make(map[kernel.OrderID]order.Status),
		prices: map[string]decimal.Decimal{
			"pizza":  decimal.NewFromInt(8),
			"samosa": decimal.NewFromInt(5),
			"coke":   decimal.NewFromInt(2),
		},
	}
}

func (f *fakeOrderStore) Create() commands.OrderUoW { return fakeUoW{store: f} }

func (f *fakeOrderStore) NextOrderID(_ context.Context) (kernel.OrderID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID++
	return f.lastID, nil
}

func (f *fakeOrderStore) InsertLineItem(_ context.Context, id kernel.OrderID, item string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prices[item]; !ok {
		return errs.NewObjectNotFoundError("food item", item)
	}
	if f.lines[id] == nil {
		f.lines[id] = make(map[string]int)
	}
	if _, dup := f.lines[id][item]; dup {
		return fmt.Errorf("duplicate line item %q for order %d", item, id)
	}
	f.lines[id][item] = qty
	return nil
}

func (f *fakeOrderStore) InsertTracking(_ context.Context, id kernel.OrderID, status order.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracking[id] = status
	return nil
}

func (f *fakeOrderStore) GetStatus(_ context.Context, id kernel.OrderID) (order.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.tracking[id]
	if !ok {
		return order.Unknown, errs.NewObjectNotFoundError("order id", id)
	}
	return status, nil
}

func (f *fakeOrderStore) GetTotal(_ context.Context, id kernel.OrderID) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for item, qty := range f.lines[id] {
		total = total.Add(f.prices[item].Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}

type fakeUoW struct{ store *fakeOrderStore }

func (fakeUoW) Begin(context.Context) error { return nil }
func (fakeUoW) Commit(context.Context) error { return nil }
func (fakeUoW) Rollback(context.Context) error { return nil }
func (u fakeUoW) OrderRepository() ports.OrderRepository { return u.store }

func mustSessionID(t *testing.T, raw string) kernel.SessionID {
	t.Helper()
	id, err := kernel.NewSessionID(raw)
	require.NoError(t, err)
	return id
}
