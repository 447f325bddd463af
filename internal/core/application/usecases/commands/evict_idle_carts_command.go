package commands

import (
	"errors"
	"time"

	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrEvictIdleCartsCommandIsNotConstructed = errors.New(
	"EvictIdleCartsCommand must be created via NewEvictIdleCartsCommand constructor",
)

// EvictIdleCartsCommand drops carts abandoned for at least IdleFor.
type EvictIdleCartsCommand struct {
	idleFor time.Duration

	guard guard.ConstructorGuard
}

// NewEvictIdleCartsCommand requires a positive idle threshold.
func NewEvictIdleCartsCommand(idleFor time.Duration) (EvictIdleCartsCommand, error) {
	if idleFor <= 0 {
		return EvictIdleCartsCommand{}, errs.NewValueIsOutOfRangeError(
			"idleFor", idleFor, time.Nanosecond, time.Duration(1<<63-1))
	}

	return EvictIdleCartsCommand{
		idleFor: idleFor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EvictIdleCartsCommand) Validate() error {
	return c.guard.Validate(ErrEvictIdleCartsCommandIsNotConstructed)
}

// IdleFor returns the idle threshold.
func (c EvictIdleCartsCommand) IdleFor() time.Duration {
	return c.idleFor
}
