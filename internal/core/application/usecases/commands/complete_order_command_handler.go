package commands

import (
	"context"
	"fmt"
	"log/slog"

	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/domain/model/order"
	"foodbot/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CompleteOrderResult describes a placed order.
type CompleteOrderResult struct {
	OrderID kernel.OrderID
	Lines   []cart.Line

	// Total is the order's price as computed by storage. TotalKnown is false
	// when the order was placed but the total could not be read back.
	Total      decimal.Decimal
	TotalKnown bool
}

// CompleteOrderCommandHandler finalizes a session's cart into a persisted order.
//
// The session lock is held for the whole operation, so no add or remove for the
// same session can interleave with finalization. The steps are:
//
//  1. allocate an order id
//  2. write one line item per cart entry, in item-name order, stopping at the
//     first failure
//  3. write the "in progress" tracking record
//  4. remove the cart
//
// Each write runs in its own transaction. If any step before 4 fails the cart
// is kept and the customer may retry; line items already written for the
// abandoned order id stay in storage and the id is never reused.
//
// Errors:
//   - ErrNoActiveOrder when the session has no cart or an empty one
//   - ErrOrderAllocationFailed when step 1 fails
//   - ErrOrderPersistFailed when step 2 or 3 fails
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoActiveOrder):
//	    // nothing to place
//	case err != nil:
//	    // cart kept, ask the customer to try again
//	default:
//	    fmt.Println("placed order", result.OrderID)
//	}
type CompleteOrderCommandHandler struct {
	carts      ports.CartStore
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewCompleteOrderCommandHandler creates a finalization handler.
func NewCompleteOrderCommandHandler(
	carts ports.CartStore,
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CompleteOrderCommandHandler{
		carts:      carts,
		uowFactory: uowFactory,
		logger:     logger.With("component", "CompleteOrderCommandHandler"),
	}
}

// Handle places the order for the command's session.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (CompleteOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteOrderResult{}, err
	}

	session, err := h.carts.Acquire(ctx, cmd.SessionID())
	if err != nil {
		return CompleteOrderResult{}, err
	}
	defer session.Release()

	current, ok := session.Get()
	if !ok || current.IsEmpty() {
		return CompleteOrderResult{}, ErrNoActiveOrder
	}
	lines := current.Lines()

	var orderID kernel.OrderID
	err = h.inTx(ctx, func(repo ports.OrderRepository) error {
		id, err := repo.NextOrderID(ctx)
		if err != nil {
			return err
		}
		if err = id.Validate(); err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "order id allocation failed",
			"session", cmd.SessionID().String(), "error", err)
		return CompleteOrderResult{}, fmt.Errorf("%w: %w", ErrOrderAllocationFailed, err)
	}

	for i, line := range lines {
		err = h.inTx(ctx, func(repo ports.OrderRepository) error {
			return repo.InsertLineItem(ctx, orderID, line.Item, line.Quantity)
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "line item write failed, cart kept",
				"session", cmd.SessionID().String(),
				"order_id", orderID.Int64(),
				"item", line.Item,
				"written", cart.FormatLines(lines[:i]),
				"error", err)
			return CompleteOrderResult{}, fmt.Errorf("%w: item %q: %w", ErrOrderPersistFailed, line.Item, err)
		}
	}

	err = h.inTx(ctx, func(repo ports.OrderRepository) error {
		return repo.InsertTracking(ctx, orderID, order.InProgress)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "tracking write failed, cart kept",
			"session", cmd.SessionID().String(),
			"order_id", orderID.Int64(),
			"error", err)
		return CompleteOrderResult{}, fmt.Errorf("%w: tracking: %w", ErrOrderPersistFailed, err)
	}

	session.Remove()

	result := CompleteOrderResult{OrderID: orderID, Lines: lines}
	total, err := h.uowFactory.Create().OrderRepository().GetTotal(ctx, orderID)
	if err != nil {
		h.logger.WarnContext(ctx, "order placed but total lookup failed",
			"order_id", orderID.Int64(), "error", err)
		return result, nil
	}
	result.Total = total
	result.TotalKnown = true

	h.logger.InfoContext(ctx, "order placed",
		"session", cmd.SessionID().String(),
		"order_id", orderID.Int64(),
		"items", cart.FormatLines(lines),
		"total", total.StringFixed(2))

	return result, nil
}

// inTx runs fn inside a fresh unit of work and commits it when fn succeeds.
func (h CompleteOrderCommandHandler) inTx(ctx context.Context, fn func(repo ports.OrderRepository) error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow.OrderRepository()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
