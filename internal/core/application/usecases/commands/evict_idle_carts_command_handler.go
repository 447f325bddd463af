package commands

import (
	"context"

	"foodbot/internal/core/ports"
)

// EvictIdleCartsCommandHandler removes carts of conversations that were
// abandoned. Sessions in use at the time are skipped and picked up by a later
// run.
type EvictIdleCartsCommandHandler struct {
	carts ports.CartStore
}

func NewEvictIdleCartsCommandHandler(carts ports.CartStore) EvictIdleCartsCommandHandler {
	return EvictIdleCartsCommandHandler{carts: carts}
}

// Handle returns the number of carts evicted.
func (h EvictIdleCartsCommandHandler) Handle(ctx context.Context, cmd EvictIdleCartsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return h.carts.EvictIdle(ctx, cmd.IdleFor()), nil
}
