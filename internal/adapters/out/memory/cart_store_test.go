package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodbot/internal/adapters/out/memory"
	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sessionID(t *testing.T, raw string) kernel.SessionID {
	t.Helper()
	id, err := kernel.NewSessionID(raw)
	require.NoError(t, err)
	return id
}

func delta(t *testing.T, item string, qty int) cart.Delta {
	t.Helper()
	d, err := cart.NewDelta([]string{item}, []int{qty})
	require.NoError(t, err)
	return d
}

func TestCartStore_UpsertThenGet(t *testing.T) {
	store := memory.NewCartStore()
	ctx := t.Context()
	sid := sessionID(t, "s1")

	s, err := store.Acquire(ctx, sid)
	require.NoError(t, err)
	_, ok := s.Get()
	assert.False(t, ok)

	c := cart.New()
	require.NoError(t, c.Merge(delta(t, "pizza", 2)))
	s.Upsert(c)
	s.Release()

	s, err = store.Acquire(ctx, sid)
	require.NoError(t, err)
	defer s.Release()

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, 2, got.Quantity("pizza"))
	assert.Equal(t, 1, store.Len())
}

func TestCartStore_LenSkipsEmptiedCarts(t *testing.T) {
	store := memory.NewCartStore()
	sid := sessionID(t, "s1")

	s, err := store.Acquire(t.Context(), sid)
	require.NoError(t, err)
	c := cart.New()
	require.NoError(t, c.Merge(delta(t, "pizza", 1)))
	s.Upsert(c)
	s.Release()
	assert.Equal(t, 1, store.Len())

	s, err = store.Acquire(t.Context(), sid)
	require.NoError(t, err)
	got, ok := s.Get()
	require.True(t, ok)
	require.NoError(t, got.Subtract(delta(t, "pizza", 1)))
	s.Upsert(got)
	s.Release()

	assert.Equal(t, 0, store.Len())

	s, err = store.Acquire(t.Context(), sid)
	require.NoError(t, err)
	defer s.Release()
	got, ok = s.Get()
	require.True(t, ok)
	assert.True(t, got.IsEmpty())
}

func TestCartStore_SessionsAreIsolated(t *testing.T) {
	store := memory.NewCartStore()
	ctx := t.Context()

	a, err := store.Acquire(ctx, sessionID(t, "a"))
	require.NoError(t, err)
	c := cart.New()
	require.NoError(t, c.Merge(delta(t, "samosa", 1)))
	a.Upsert(c)
	a.Release()

	b, err := store.Acquire(ctx, sessionID(t, "b"))
	require.NoError(t, err)
	defer b.Release()

	_, ok := b.Get()
	assert.False(t, ok)
}

func TestCartStore_ClearIsIdempotent(t *testing.T) {
	store := memory.NewCartStore()
	ctx := t.Context()
	sid := sessionID(t, "s1")

	s, err := store.Acquire(ctx, sid)
	require.NoError(t, err)
	s.Upsert(cart.New())
	s.Clear()
	s.Clear()
	s.Release()
	s.Release()

	assert.Equal(t, 0, store.Len())
}

func TestCartStore_ConcurrentMergesOnOneSessionAreNotLost(t *testing.T) {
	store := memory.NewCartStore()
	ctx := t.Context()
	sid := sessionID(t, "busy")

	const workers = 64
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := store.Acquire(ctx, sid)
			if !assert.NoError(t, err) {
				return
			}
			defer s.Release()

			c, ok := s.Get()
			if !ok {
				c = cart.New()
			}
			d, _ := cart.NewDelta([]string{"pizza"}, []int{1})
			assert.NoError(t, c.Merge(d))
			s.Upsert(c)
		}()
	}
	wg.Wait()

	s, err := store.Acquire(ctx, sid)
	require.NoError(t, err)
	defer s.Release()

	c, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, workers, c.Quantity("pizza"))
}

func TestCartStore_HeldSessionDoesNotBlockOthers(t *testing.T) {
	store := memory.NewCartStore()

	held, err := store.Acquire(t.Context(), sessionID(t, "a"))
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	other, err := store.Acquire(ctx, sessionID(t, "b"))
	require.NoError(t, err)
	other.Release()
}

func TestCartStore_AcquireGivesUpWhenContextEnds(t *testing.T) {
	store := memory.NewCartStore()
	sid := sessionID(t, "a")

	held, err := store.Acquire(t.Context(), sid)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	_, err = store.Acquire(ctx, sid)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	held.Release()

	again, err := store.Acquire(t.Context(), sid)
	require.NoError(t, err)
	again.Release()
}

func TestCartStore_AcquireRejectsZeroSessionID(t *testing.T) {
	store := memory.NewCartStore()

	_, err := store.Acquire(t.Context(), kernel.SessionID{})
	require.ErrorIs(t, err, kernel.ErrSessionIDIsNotConstructed)
}

func TestCartStore_EvictIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewCartStore().WithClock(func() time.Time { return now })
	ctx := t.Context()

	for _, raw := range []string{"old", "fresh"} {
		s, err := store.Acquire(ctx, sessionID(t, raw))
		require.NoError(t, err)
		s.Upsert(cart.New())
		s.Release()
		now = now.Add(20 * time.Minute)
	}
	// "old" was touched 40m ago, "fresh" 20m ago.

	evicted := store.EvictIdle(ctx, 30*time.Minute)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())

	s, err := store.Acquire(ctx, sessionID(t, "old"))
	require.NoError(t, err)
	_, ok := s.Get()
	assert.False(t, ok)
	s.Release()
}

func TestCartStore_EvictIdleSkipsHeldSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewCartStore().WithClock(func() time.Time { return now })
	ctx := t.Context()
	sid := sessionID(t, "held")

	s, err := store.Acquire(ctx, sid)
	require.NoError(t, err)
	s.Upsert(cart.New())
	s.Release()

	s, err = store.Acquire(ctx, sid)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	assert.Equal(t, 0, store.EvictIdle(ctx, time.Minute))

	_, ok := s.Get()
	assert.True(t, ok)
	s.Release()
}
