package commands

import (
	"context"

	"foodbot/internal/core/ports"
)

// RemoveItemsCommandHandler subtracts items from a session's cart.
//
// Errors:
//   - ErrNoActiveOrder when the session has no cart
//   - *cart.ItemNotInCartError when an item is absent or short; the cart is
//     unchanged
type RemoveItemsCommandHandler struct {
	carts ports.CartStore
}

func NewRemoveItemsCommandHandler(carts ports.CartStore) RemoveItemsCommandHandler {
	return RemoveItemsCommandHandler{carts: carts}
}

func (h RemoveItemsCommandHandler) Handle(ctx context.Context, cmd RemoveItemsCommand) (CartSummary, error) {
	if err := cmd.Validate(); err != nil {
		return CartSummary{}, err
	}

	session, err := h.carts.Acquire(ctx, cmd.SessionID())
	if err != nil {
		return CartSummary{}, err
	}
	defer session.Release()

	current, ok := session.Get()
	if !ok {
		return CartSummary{}, ErrNoActiveOrder
	}

	if err = current.Subtract(cmd.Delta()); err != nil {
		return CartSummary{}, err
	}
	session.Upsert(current)

	return newCartSummary(cmd.SessionID(), cmd.Delta(), current), nil
}
