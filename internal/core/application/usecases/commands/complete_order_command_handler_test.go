package commands_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"foodbot/internal/adapters/out/memory"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("storage is down")

func newMockUoW(repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return uow, factory
}

func completeOrder(
	t *testing.T,
	store ports.CartStore,
	factory commands.OrderUoWFactory,
	sid kernel.SessionID,
) (commands.CompleteOrderResult, error) {
	t.Helper()
	cmd, err := commands.NewCompleteOrderCommand(sid)
	require.NoError(t, err)
	return commands.NewCompleteOrderCommandHandler(store, factory, nil).Handle(t.Context(), cmd)
}

func TestCompleteOrderCommandHandler_Success(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza", "coke"}, []int{2, 1})

	repo := new(MockOrderRepository)
	mock.InOrder(
		repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(7), nil).Once(),
		repo.On("InsertLineItem", mock.Anything, kernel.OrderID(7), "coke", 1).Return(nil).Once(),
		repo.On("InsertLineItem", mock.Anything, kernel.OrderID(7), "pizza", 2).Return(nil).Once(),
		repo.On("InsertTracking", mock.Anything, kernel.OrderID(7), order.InProgress).Return(nil).Once(),
		repo.On("GetTotal", mock.Anything, kernel.OrderID(7)).Return(decimal.NewFromInt(18), nil).Once(),
	)
	uow, factory := newMockUoW(repo)

	result, err := completeOrder(t, store, factory, sid)
	require.NoError(t, err)
	assert.Equal(t, kernel.OrderID(7), result.OrderID)
	assert.True(t, result.TotalKnown)
	assert.True(t, decimal.NewFromInt(18).Equal(result.Total))
	assert.Equal(t, 0, store.Len())

	repo.AssertExpectations(t)
	uow.AssertNumberOfCalls(t, "Commit", 4)
}

func TestCompleteOrderCommandHandler_NoCart(t *testing.T) {
	store := memory.NewCartStore()
	repo := new(MockOrderRepository)
	_, factory := newMockUoW(repo)

	_, err := completeOrder(t, store, factory, mustSessionID(t, "s1"))
	require.ErrorIs(t, err, commands.ErrNoActiveOrder)
	repo.AssertNotCalled(t, "NextOrderID", mock.Anything)
}

func TestCompleteOrderCommandHandler_EmptyCartIsNoActiveOrder(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{1})

	remove, err := commands.NewRemoveItemsCommand(sid, []string{"pizza"}, []int{1})
	require.NoError(t, err)
	_, err = commands.NewRemoveItemsCommandHandler(store).Handle(t.Context(), remove)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	repo := new(MockOrderRepository)
	_, factory := newMockUoW(repo)

	_, err = completeOrder(t, store, factory, sid)
	require.ErrorIs(t, err, commands.ErrNoActiveOrder)
	repo.AssertNotCalled(t, "NextOrderID", mock.Anything)
}

func TestCompleteOrderCommandHandler_AllocationFailureKeepsCart(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{2})

	repo := new(MockOrderRepository)
	repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(0), errStorage).Once()
	uow, factory := newMockUoW(repo)

	_, err := completeOrder(t, store, factory, sid)
	require.ErrorIs(t, err, commands.ErrOrderAllocationFailed)
	require.ErrorIs(t, err, errStorage)

	assert.Equal(t, 1, store.Len())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNotCalled(t, "InsertLineItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteOrderCommandHandler_SecondLineItemFails(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"a", "b", "c"}, []int{1, 2, 3})

	repo := new(MockOrderRepository)
	mock.InOrder(
		repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(3), nil).Once(),
		repo.On("InsertLineItem", mock.Anything, kernel.OrderID(3), "a", 1).Return(nil).Once(),
		repo.On("InsertLineItem", mock.Anything, kernel.OrderID(3), "b", 2).Return(errStorage).Once(),
	)
	_, factory := newMockUoW(repo)

	_, err := completeOrder(t, store, factory, sid)
	require.ErrorIs(t, err, commands.ErrOrderPersistFailed)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "InsertLineItem", mock.Anything, kernel.OrderID(3), "c", 3)
	repo.AssertNotCalled(t, "InsertTracking", mock.Anything, mock.Anything, mock.Anything)

	summary := addItems(t, store, sid, []string{"d"}, []int{1})
	assert.Equal(t, "1 a, 2 b, 3 c, 1 d", summary.CartText())
}

func TestCompleteOrderCommandHandler_TrackingFailureKeepsCart(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{1})

	repo := new(MockOrderRepository)
	repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(1), nil).Once()
	repo.On("InsertLineItem", mock.Anything, kernel.OrderID(1), "pizza", 1).Return(nil).Once()
	repo.On("InsertTracking", mock.Anything, kernel.OrderID(1), order.InProgress).Return(errStorage).Once()
	_, factory := newMockUoW(repo)

	_, err := completeOrder(t, store, factory, sid)
	require.ErrorIs(t, err, commands.ErrOrderPersistFailed)
	assert.Equal(t, 1, store.Len())
}

func TestCompleteOrderCommandHandler_CommitFailureIsPersistFailure(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{1})

	repo := new(MockOrderRepository)
	repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(1), nil).Once()
	repo.On("InsertLineItem", mock.Anything, kernel.OrderID(1), "pizza", 1).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(errStorage).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	_, err := completeOrder(t, store, factory, sid)
	require.ErrorIs(t, err, commands.ErrOrderPersistFailed)
	require.ErrorIs(t, err, errStorage)
	assert.Equal(t, 1, store.Len())
}

func TestCompleteOrderCommandHandler_TotalLookupFailureStillPlacesOrder(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{1})

	repo := new(MockOrderRepository)
	repo.On("NextOrderID", mock.Anything).Return(kernel.OrderID(2), nil).Once()
	repo.On("InsertLineItem", mock.Anything, kernel.OrderID(2), "pizza", 1).Return(nil).Once()
	repo.On("InsertTracking", mock.Anything, kernel.OrderID(2), order.InProgress).Return(nil).Once()
	repo.On("GetTotal", mock.Anything, kernel.OrderID(2)).Return(decimal.Zero, errStorage).Once()
	_, factory := newMockUoW(repo)

	result, err := completeOrder(t, store, factory, sid)
	require.NoError(t, err)
	assert.Equal(t, kernel.OrderID(2), result.OrderID)
	assert.False(t, result.TotalKnown)
	assert.Equal(t, 0, store.Len())
}

func TestCompleteOrderCommandHandler_EndToEnd(t *testing.T) {
	store := memory.NewCartStore()
	orders := newFakeOrderStore()
	sid := mustSessionID(t, "s1")

	addItems(t, store, sid, []string{"pizza", "samosa"}, []int{2, 1})

	result, err := completeOrder(t, store, orders, sid)
	require.NoError(t, err)
	assert.Equal(t, kernel.FirstOrderID, result.OrderID)
	assert.True(t, decimal.NewFromInt(21).Equal(result.Total))

	status, err := orders.GetStatus(t.Context(), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, status)

	_, err = completeOrder(t, store, orders, sid)
	require.ErrorIs(t, err, commands.ErrNoActiveOrder)
}

func TestCompleteOrderCommandHandler_MixedCaseItemsBecomeOneLine(t *testing.T) {
	store := memory.NewCartStore()
	orders := newFakeOrderStore()
	sid := mustSessionID(t, "s1")

	addItems(t, store, sid, []string{"Pizza"}, []int{1})
	summary := addItems(t, store, sid, []string{"pizza "}, []int{1})
	assert.Equal(t, "2 pizza", summary.CartText())

	result, err := completeOrder(t, store, orders, sid)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pizza": 2}, orders.lines[result.OrderID])
	assert.True(t, decimal.NewFromInt(16).Equal(result.Total))
	assert.Equal(t, 0, store.Len())
}

func TestCompleteOrderCommandHandler_UnknownItemKeepsCart(t *testing.T) {
	store := memory.NewCartStore()
	orders := newFakeOrderStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"unicorn"}, []int{1})

	_, err := completeOrder(t, store, orders, sid)
	require.ErrorIs(t, err, commands.ErrOrderPersistFailed)
	assert.Equal(t, 1, store.Len())
}

func TestCompleteOrderCommandHandler_ConcurrentSessionsGetDistinctIDs(t *testing.T) {
	store := memory.NewCartStore()
	orders := newFakeOrderStore()

	const sessions = 16
	ids := make([]kernel.SessionID, sessions)
	for i := range sessions {
		ids[i] = mustSessionID(t, "s"+strconv.Itoa(i))
		addItems(t, store, ids[i], []string{"pizza"}, []int{1})
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		placed = make(map[kernel.OrderID]bool)
	)
	for _, sid := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewCompleteOrderCommand(sid)
			if !assert.NoError(t, err) {
				return
			}
			result, err := commands.NewCompleteOrderCommandHandler(store, orders, nil).Handle(t.Context(), cmd)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			placed[result.OrderID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, placed, sessions)
	assert.Equal(t, 0, store.Len())
}
