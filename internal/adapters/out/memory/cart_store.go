// Package memory provides the in-process cart store. Carts live only as long
// as the process; placed orders are durable in the postgres adapter.
//
// Locking is per session: each session owns a one-slot semaphore, and the
// store-wide mutex only guards the session map itself, never a cart operation.
// A caller waiting for a busy session therefore never blocks callers of any
// other session.
package memory

import (
	"context"
	"sync"
	"time"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/ports"
)

var _ ports.CartStore = (*CartStore)(nil)

// entry.cart and entry.lines are written only by the semaphore holder and
// only under CartStore.mu, so Len can read them with the mutex alone. lines is
// the cart's size at its last Upsert; the holder may mutate the cart itself
// in place, so Len never looks inside it.
type entry struct {
	sem     chan struct{}
	cart    *cart.Cart
	lines   int
	touched time.Time
	refs    int
}

// CartStore is a ports.CartStore backed by a map.
//
// Example:
//
//	store := memory.NewCartStore()
//	session, err := store.Acquire(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	defer session.Release()
type CartStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewCartStore creates an empty store.
func NewCartStore() *CartStore {
	return &CartStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// WithClock replaces the store's time source. Used by eviction tests.
func (s *CartStore) WithClock(now func() time.Time) *CartStore {
	s.now = now
	return s
}

// Acquire waits for the session's lock. The wait is abandoned when ctx is done.
func (s *CartStore) Acquire(ctx context.Context, sessionID kernel.SessionID) (ports.CartSession, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}
	key := sessionID.String()

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.entries[key] = e
	}
	e.refs++
	s.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return &session{store: s, key: key, entry: e}, nil
	case <-ctx.Done():
		s.mu.Lock()
		s.dropRef(key, e)
		s.mu.Unlock()
		return nil, ctx.Err()
	}
}

// EvictIdle drops carts untouched for at least idleFor. A session held by a
// caller is skipped, not waited on.
func (s *CartStore) EvictIdle(ctx context.Context, idleFor time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for key, e := range s.entries {
		if ctx.Err() != nil {
			break
		}

		select {
		case e.sem <- struct{}{}:
		default:
			continue
		}

		if e.cart != nil && now.Sub(e.touched) >= idleFor {
			e.cart = nil
			e.lines = 0
			evicted++
		}
		if e.refs == 0 && e.cart == nil {
			delete(s.entries, key)
		}

		<-e.sem
	}

	return evicted
}

// Len returns the number of sessions holding a non-empty cart.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if e.lines > 0 {
			n++
		}
	}
	return n
}

// dropRef must be called with s.mu held.
func (s *CartStore) dropRef(key string, e *entry) {
	e.refs--
	if e.refs == 0 && e.cart == nil && s.entries[key] == e {
		delete(s.entries, key)
	}
}

type session struct {
	store    *CartStore
	key      string
	entry    *entry
	released bool
}

func (s *session) Get() (*cart.Cart, bool) {
	if s.released || s.entry.cart == nil {
		return nil, false
	}
	return s.entry.cart, true
}

func (s *session) Upsert(c *cart.Cart) {
	if s.released {
		return
	}
	lines := 0
	if c != nil {
		lines = c.Len()
	}
	s.store.mu.Lock()
	s.entry.cart = c
	s.entry.lines = lines
	s.store.mu.Unlock()
}

func (s *session) Clear() {
	if s.released {
		return
	}
	s.store.mu.Lock()
	s.entry.cart = nil
	s.entry.lines = 0
	s.store.mu.Unlock()
}

func (s *session) Remove() {
	s.Clear()
}

// Release updates the idle clock and hands the session lock to the next waiter.
func (s *session) Release() {
	if s.released {
		return
	}
	s.released = true

	s.store.mu.Lock()
	s.entry.touched = s.store.now()
	s.store.dropRef(s.key, s.entry)
	s.store.mu.Unlock()

	<-s.entry.sem
}
