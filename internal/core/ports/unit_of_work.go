package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per write, so concurrent
// finalizations never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one storage transaction around order writes. The caller owns
// the lifecycle: Begin, then Commit or Rollback.
type UnitOfWork interface {
	// Begin opens the transaction.
	Begin(ctx context.Context) error

	// Commit makes the writes durable. Fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback discards the writes. Fails when no transaction is open, which
	// makes a deferred Rollback after Commit harmless.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction, or to the plain
	// connection when none is open.
	OrderRepository() OrderRepository
}
