package commands

import (
	"context"

	"foodbot/internal/core/ports"
)

// NewOrderCommandHandler clears a session's cart. Clearing a session that has
// no cart is not an error.
type NewOrderCommandHandler struct {
	carts ports.CartStore
}

func NewNewOrderCommandHandler(carts ports.CartStore) NewOrderCommandHandler {
	return NewOrderCommandHandler{carts: carts}
}

func (h NewOrderCommandHandler) Handle(ctx context.Context, cmd NewOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.carts.Acquire(ctx, cmd.SessionID())
	if err != nil {
		return err
	}
	defer session.Release()

	session.Clear()
	return nil
}
