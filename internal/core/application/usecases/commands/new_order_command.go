package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/guard"
)

var ErrNewOrderCommandIsNotConstructed = errors.New(
	"NewOrderCommand must be created via NewNewOrderCommand constructor",
)

// NewOrderCommand starts a fresh order for a session, discarding any cart left
// over from an earlier, unfinished conversation.
type NewOrderCommand struct {
	sessionID kernel.SessionID

	guard guard.ConstructorGuard
}

// NewNewOrderCommand creates the command for sessionID.
func NewNewOrderCommand(sessionID kernel.SessionID) (NewOrderCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return NewOrderCommand{}, err
	}

	return NewOrderCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c NewOrderCommand) Validate() error {
	return c.guard.Validate(ErrNewOrderCommandIsNotConstructed)
}

// SessionID returns the session whose cart is reset.
func (c NewOrderCommand) SessionID() kernel.SessionID {
	return c.sessionID
}
