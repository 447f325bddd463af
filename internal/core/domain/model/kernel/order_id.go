package kernel

import (
	"math"
	"strconv"

	"foodbot/internal/pkg/errs"
)

// OrderID is the identifier handed to a customer when an order is placed.
// Ids are allocated by storage as max-assigned + 1, so the first order is 1.
type OrderID int64

// FirstOrderID is allocated when no order exists yet.
const FirstOrderID OrderID = 1

// NewOrderID validates that v is a usable order id (strictly positive).
func NewOrderID(v int64) (OrderID, error) {
	id := OrderID(v)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects zero and negative ids.
func (id OrderID) Validate() error {
	if id < FirstOrderID {
		return errs.NewValueIsOutOfRangeError("order id", int64(id), int64(FirstOrderID), int64(math.MaxInt64))
	}
	return nil
}

// Next returns the id that follows id.
func (id OrderID) Next() OrderID {
	return id + 1
}

// Int64 returns the raw value for persistence.
func (id OrderID) Int64() int64 {
	return int64(id)
}

func (id OrderID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
