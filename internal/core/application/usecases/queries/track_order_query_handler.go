package queries

import (
	"context"
	"errors"
	"log/slog"

	"foodbot/internal/core/ports"
	"foodbot/internal/pkg/errs"
)

// TrackOrderQueryHandler reads an order's latest tracking status.
//
// A storage outage is not reported as an error: the response carries
// TrackingUnknown so callers can answer "try again later" instead of "no such
// order". Only a query that reached storage and matched nothing yields
// TrackingNotFound.
type TrackOrderQueryHandler struct {
	orders ports.OrderRepository
	logger *slog.Logger
}

func NewTrackOrderQueryHandler(orders ports.OrderRepository, logger *slog.Logger) TrackOrderQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return TrackOrderQueryHandler{
		orders: orders,
		logger: logger.With("component", "TrackOrderQueryHandler"),
	}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	resp := TrackOrderQueryResponse{OrderID: query.OrderID()}

	status, err := h.orders.GetStatus(ctx, query.OrderID())
	switch {
	case err == nil:
		resp.State = TrackingFound
		resp.Status = status
	case errors.Is(err, errs.ErrObjectNotFound):
		resp.State = TrackingNotFound
	case errors.Is(err, ports.ErrRepositoryUnavailable):
		h.logger.WarnContext(ctx, "status lookup unavailable",
			"order_id", query.OrderID().Int64(), "error", err)
		resp.State = TrackingUnknown
	default:
		return TrackOrderQueryResponse{}, err
	}

	return resp, nil
}
