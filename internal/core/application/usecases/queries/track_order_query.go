// Package queries contains the read-only operations: order status lookups and
// order details for the REST surface.
package queries

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery looks up the current status of an order.
//
// Example:
//
//	query, err := NewTrackOrderQuery(42)
//	if err != nil {
//	    return err // order ids start at 1
//	}
//	resp, err := handler.Handle(ctx, query)
//	switch resp.State {
//	case TrackingFound:
//	    fmt.Println(resp.Status)
//	case TrackingNotFound:
//	    fmt.Println("no such order")
//	case TrackingUnknown:
//	    fmt.Println("try again later")
//	}
type TrackOrderQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery validates the raw order id.
func NewTrackOrderQuery(orderID int64) (TrackOrderQuery, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the order to look up.
func (q TrackOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// TrackingState tells a found order apart from a missing one and from a
// lookup that could not reach storage.
type TrackingState int

const (
	TrackingFound TrackingState = iota
	TrackingNotFound
	TrackingUnknown
)

func (s TrackingState) String() string {
	switch s {
	case TrackingFound:
		return "found"
	case TrackingNotFound:
		return "not_found"
	case TrackingUnknown:
		return "unknown"
	}
	return "invalid"
}

// TrackOrderQueryResponse carries the lookup outcome. Status is set only when
// State is TrackingFound.
type TrackOrderQueryResponse struct {
	OrderID kernel.OrderID
	State   TrackingState
	Status  order.Status
}
