package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/guard"
)

var ErrAddItemsCommandIsNotConstructed = errors.New(
	"AddItemsCommand must be created via NewAddItemsCommand constructor",
)

// AddItemsCommand adds a batch of items to a session's cart.
//
// Example:
//
//	cmd, err := NewAddItemsCommand(sessionID, []string{"pizza", "coke"}, []int{1, 2})
//	if err != nil {
//	    // cart.ErrInputMismatch or cart.ErrInvalidQuantity
//	}
//	summary, err := handler.Handle(ctx, cmd)
type AddItemsCommand struct {
	sessionID kernel.SessionID
	delta     cart.Delta

	guard guard.ConstructorGuard
}

// NewAddItemsCommand validates the session and builds the delta from the
// parallel item and quantity lists.
func NewAddItemsCommand(sessionID kernel.SessionID, items []string, quantities []int) (AddItemsCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return AddItemsCommand{}, err
	}

	delta, err := cart.NewDelta(items, quantities)
	if err != nil {
		return AddItemsCommand{}, err
	}

	return AddItemsCommand{
		sessionID: sessionID,
		delta:     delta,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddItemsCommandIsNotConstructed)
}

// SessionID returns the session whose cart is extended.
func (c AddItemsCommand) SessionID() kernel.SessionID {
	return c.sessionID
}

// Delta returns the items to add.
func (c AddItemsCommand) Delta() cart.Delta {
	return c.delta
}
