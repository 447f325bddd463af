package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrInputMismatch is returned for an empty delta, parallel item and
	// quantity lists of different length, or a blank item name.
	ErrInputMismatch = errors.New("items and quantities do not match")

	// ErrInvalidQuantity is returned for a non-positive quantity in a delta.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")

	// ErrItemNotInCart is returned by Subtract when an item is absent or has
	// less than the requested quantity.
	ErrItemNotInCart = errors.New("item is not in cart")

	ErrCartIsNotConstructed  = errors.New("Cart must be created via New")
	ErrDeltaIsNotConstructed = errors.New("Delta must be created via NewDelta")
)

// InvalidQuantityError names the line that carried a non-positive quantity.
type InvalidQuantityError struct {
	Item     string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrInvalidQuantity, e.Quantity, e.Item)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// ItemNotInCartError names the exact (item, quantity) pair Subtract could not
// take out of the cart.
type ItemNotInCartError struct {
	Item     string
	Quantity int
}

func (e *ItemNotInCartError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrItemNotInCart, e.Quantity, e.Item)
}

func (e *ItemNotInCartError) Unwrap() error {
	return ErrItemNotInCart
}
