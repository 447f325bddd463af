package commands_test

import (
	"sync"
	"testing"
	"time"

	"foodbot/internal/adapters/out/memory"
	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addItems(t *testing.T, store *memory.CartStore, sid kernel.SessionID, items []string, qty []int) commands.CartSummary {
	t.Helper()
	cmd, err := commands.NewAddItemsCommand(sid, items, qty)
	require.NoError(t, err)
	summary, err := commands.NewAddItemsCommandHandler(store).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return summary
}

func TestAddItemsCommandHandler_CreatesAndMergesCart(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")

	summary := addItems(t, store, sid, []string{"pizza"}, []int{2})
	assert.Equal(t, "2 pizza", summary.CartText())

	summary = addItems(t, store, sid, []string{"coke", "pizza"}, []int{1, 1})
	assert.Equal(t, "1 coke, 1 pizza", summary.AppliedText())
	assert.Equal(t, "1 coke, 3 pizza", summary.CartText())
}

func TestAddItemsCommandHandler_ConcurrentAddsAreAllApplied(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	h := commands.NewAddItemsCommandHandler(store)

	const workers = 32
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAddItemsCommand(sid, []string{"samosa"}, []int{2})
			if !assert.NoError(t, err) {
				return
			}
			_, err = h.Handle(t.Context(), cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	summary := addItems(t, store, sid, []string{"coke"}, []int{1})
	assert.Equal(t, []cart.Line{{Item: "coke", Quantity: 1}, {Item: "samosa", Quantity: 2 * workers}}, summary.Cart)
}

func TestRemoveItemsCommandHandler_NoCart(t *testing.T) {
	store := memory.NewCartStore()
	cmd, err := commands.NewRemoveItemsCommand(mustSessionID(t, "s1"), []string{"pizza"}, []int{1})
	require.NoError(t, err)

	_, err = commands.NewRemoveItemsCommandHandler(store).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, commands.ErrNoActiveOrder)
}

func TestRemoveItemsCommandHandler_IsAllOrNothing(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"a", "b"}, []int{2, 1})

	cmd, err := commands.NewRemoveItemsCommand(sid, []string{"a", "b"}, []int{1, 5})
	require.NoError(t, err)

	_, err = commands.NewRemoveItemsCommandHandler(store).Handle(t.Context(), cmd)
	var notInCart *cart.ItemNotInCartError
	require.ErrorAs(t, err, &notInCart)
	assert.Equal(t, "b", notInCart.Item)
	assert.Equal(t, 5, notInCart.Quantity)

	summary := addItems(t, store, sid, []string{"c"}, []int{1})
	assert.Equal(t, "2 a, 1 b, 1 c", summary.CartText())
}

func TestRemoveItemsCommandHandler_RemovesFullyConsumedItems(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza", "coke"}, []int{2, 1})

	cmd, err := commands.NewRemoveItemsCommand(sid, []string{"pizza"}, []int{2})
	require.NoError(t, err)

	summary, err := commands.NewRemoveItemsCommandHandler(store).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "1 coke", summary.CartText())
}

func TestNewOrderCommandHandler_ClearsCart(t *testing.T) {
	store := memory.NewCartStore()
	sid := mustSessionID(t, "s1")
	addItems(t, store, sid, []string{"pizza"}, []int{2})

	cmd, err := commands.NewNewOrderCommand(sid)
	require.NoError(t, err)
	h := commands.NewNewOrderCommandHandler(store)
	require.NoError(t, h.Handle(t.Context(), cmd))
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, 0, store.Len())
}

func TestEvictIdleCartsCommandHandler(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := memory.NewCartStore().WithClock(func() time.Time { return now })
	addItems(t, store, mustSessionID(t, "s1"), []string{"pizza"}, []int{1})

	now = now.Add(2 * time.Hour)

	cmd, err := commands.NewEvictIdleCartsCommand(time.Hour)
	require.NoError(t, err)
	n, err := commands.NewEvictIdleCartsCommandHandler(store).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, store.Len())
}
