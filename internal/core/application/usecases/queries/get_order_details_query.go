package queries

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery reads a placed order with its priced line items.
//
// Example:
//
//	query, _ := NewGetOrderDetailsQuery(7)
//	details, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.ErrNotFound
//	}
//	for _, line := range details.Lines {
//	    fmt.Printf("%d x %s = %s\n", line.Quantity, line.Item, line.LineTotal.StringFixed(2))
//	}
type GetOrderDetailsQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery validates the raw order id.
func NewGetOrderDetailsQuery(orderID int64) (GetOrderDetailsQuery, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return GetOrderDetailsQuery{}, err
	}

	return GetOrderDetailsQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// OrderLineResponse is one priced line of a placed order.
type OrderLineResponse struct {
	Item      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// GetOrderDetailsQueryResponse is a placed order as stored. Status is
// order.Unknown when line items were written but tracking was not.
type GetOrderDetailsQueryResponse struct {
	OrderID kernel.OrderID
	Status  order.Status
	Lines   []OrderLineResponse
	Total   decimal.Decimal
}
