package commands

import (
	"context"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/ports"
)

// AddItemsCommandHandler merges items into a session's cart, creating the cart
// on the first add. The merge runs under the session lock, so concurrent adds
// for one session never lose an update.
type AddItemsCommandHandler struct {
	carts ports.CartStore
}

func NewAddItemsCommandHandler(carts ports.CartStore) AddItemsCommandHandler {
	return AddItemsCommandHandler{carts: carts}
}

func (h AddItemsCommandHandler) Handle(ctx context.Context, cmd AddItemsCommand) (CartSummary, error) {
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
		current = cart.New()
	}

	if err = current.Merge(cmd.Delta()); err != nil {
		return CartSummary{}, err
	}
	session.Upsert(current)

	return newCartSummary(cmd.SessionID(), cmd.Delta(), current), nil
}
