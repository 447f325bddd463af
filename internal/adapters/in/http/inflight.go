package http

import (
	"context"
	"sync"
)

// deliveryLocks serializes webhook deliveries that share a dedup key. A retry
// that arrives while the first delivery is still running waits for it and
// then finds its reply in the cache.
type deliveryLocks struct {
	mu    sync.Mutex
	locks map[string]*deliveryLock
}

type deliveryLock struct {
	sem  chan struct{}
	refs int
}

func newDeliveryLocks() *deliveryLocks {
	return &deliveryLocks{locks: make(map[string]*deliveryLock)}
}

// acquire blocks until key is free or ctx is done. The returned func releases
// the key and must be called exactly once.
func (l *deliveryLocks) acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &deliveryLock{sem: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, lock)
		return nil, ctx.Err()
	}

	return func() {
		<-lock.sem
		l.drop(key, lock)
	}, nil
}

func (l *deliveryLocks) drop(key string, lock *deliveryLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *deliveryLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
