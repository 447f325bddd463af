package commands

import "errors"

var (
	// ErrNoActiveOrder is returned when a session has no cart (or an empty one)
	// to remove items from or to finalize.
	ErrNoActiveOrder = errors.New("no active order found for session")

	// ErrOrderAllocationFailed is returned when no order id could be allocated.
	ErrOrderAllocationFailed = errors.New("order id allocation failed")

	// ErrOrderPersistFailed is returned when a line item or the tracking record
	// could not be written. The session's cart is kept so finalization can be
	// retried.
	ErrOrderPersistFailed = errors.New("order could not be persisted")
)
