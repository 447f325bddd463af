package queries

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/guard"
)

var ErrGetOrderTotalQueryIsNotConstructed = errors.New(
	"GetOrderTotalQuery must be created via NewGetOrderTotalQuery constructor",
)

// GetOrderTotalQuery sums an order's line totals.
type GetOrderTotalQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderTotalQuery(orderID kernel.OrderID) (GetOrderTotalQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTotalQuery{}, err
	}

	return GetOrderTotalQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTotalQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTotalQueryIsNotConstructed)
}

func (q GetOrderTotalQuery) OrderID() kernel.OrderID {
	return q.orderID
}
