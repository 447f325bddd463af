package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/guard"
)

var ErrRemoveItemsCommandIsNotConstructed = errors.New(
	"RemoveItemsCommand must be created via NewRemoveItemsCommand constructor",
)

// RemoveItemsCommand takes a batch of items out of a session's cart.
type RemoveItemsCommand struct {
	sessionID kernel.SessionID
	delta     cart.Delta

	guard guard.ConstructorGuard
}

// NewRemoveItemsCommand validates the session and builds the delta from the
// parallel item and quantity lists.
func NewRemoveItemsCommand(sessionID kernel.SessionID, items []string, quantities []int) (RemoveItemsCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return RemoveItemsCommand{}, err
	}

	delta, err := cart.NewDelta(items, quantities)
	if err != nil {
		return RemoveItemsCommand{}, err
	}

	return RemoveItemsCommand{
		sessionID: sessionID,
		delta:     delta,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveItemsCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemsCommandIsNotConstructed)
}

// SessionID returns the session whose cart is reduced.
func (c RemoveItemsCommand) SessionID() kernel.SessionID {
	return c.sessionID
}

// Delta returns the items to remove.
func (c RemoveItemsCommand) Delta() cart.Delta {
	return c.delta
}
