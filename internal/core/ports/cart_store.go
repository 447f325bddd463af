package ports

import (
	"context"
	"time"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
)

// CartStore owns every live cart, keyed by session.
//
// All access to one session goes through a CartSession obtained from Acquire,
// which holds that session's exclusive lock until Release. Sessions never wait
// on each other.
//
// Example:
//
//	session, err := store.Acquire(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	defer session.Release()
//
//	c, ok := session.Get()
//	if !ok {
//	    c = cart.New()
//	}
//	_ = c.Merge(delta)
//	session.Upsert(c)
type CartStore interface {
	// Acquire blocks until the session's lock is free or ctx is done.
	Acquire(ctx context.Context, sessionID kernel.SessionID) (CartSession, error)

	// EvictIdle drops carts that have not been touched for at least idleFor.
	// Sessions currently held by a caller are skipped. Returns how many carts
	// were dropped.
	EvictIdle(ctx context.Context, idleFor time.Duration) int

	// Len returns the number of live carts. A cart emptied by removals does
	// not count.
	Len() int
}

// CartSession is an exclusive handle on one session's cart. It must not be used
// after Release.
type CartSession interface {
	// Get returns the current cart, or false when the session has none. The
	// returned cart may be mutated in place while the session is held.
	Get() (*cart.Cart, bool)

	// Upsert replaces the session's cart.
	Upsert(c *cart.Cart)

	// Clear discards any cart for the session. Idempotent.
	Clear()

	// Remove deletes the cart after it has been consumed by finalization.
	Remove()

	// Release ends the critical section. Safe to call more than once.
	Release()
}
