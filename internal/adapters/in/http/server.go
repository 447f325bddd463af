package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"foodbot/internal/core/application/usecases/commands"
	"foodbot/internal/core/application/usecases/queries"
	"foodbot/internal/core/domain/model/cart"
	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/core/ports"
	"foodbot/internal/generated/servers"
	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Intent outcomes reported to metrics.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeReplayed = "replayed"
)

// OrderDetailsHandler reads a placed order for the REST endpoint.
type OrderDetailsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	NewOrder      commands.NewOrderCommandHandler
	AddItems      commands.AddItemsCommandHandler
	RemoveItems   commands.RemoveItemsCommandHandler
	CompleteOrder commands.CompleteOrderCommandHandler
	TrackOrder    queries.TrackOrderQueryHandler
	OrderDetails  OrderDetailsHandler
}

// Options configures the server's ambient behavior. Zero values are usable:
// no reply cache, no metrics, the default logger and no request deadline.
type Options struct {
	StoreHours     string
	Replies        ports.ReplyCache
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// Server implements servers.ServerInterface. It routes webhook intents to the
// ordering use cases and renders their results as reply text.
type Server struct {
	handlers Handlers

	storeHours string
	replies    ports.ReplyCache
	inflight   *deliveryLocks
	metrics    *metrics.Metrics
	logger     *slog.Logger
	timeout    time.Duration
}

// NewServer creates a server over the given use cases.
func NewServer(handlers Handlers, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		handlers:   handlers,
		storeHours: opts.StoreHours,
		replies:    opts.Replies,
		inflight:   newDeliveryLocks(),
		metrics:    opts.Metrics,
		logger:     logger.With("component", "http.Server"),
		timeout:    opts.RequestTimeout,
	}
}

// PostWebhook handles POST /webhook - fulfills one detected intent.
func (s *Server) PostWebhook(ctx echo.Context) error {
	var req servers.WebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	intent, err := ParseIntent(req.QueryResult.Intent.DisplayName)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	sessionID, err := kernel.SessionIDFromPath(req.Session)
	if err != nil {
		return badRequest(ctx, "Invalid session: "+err.Error())
	}

	var params map[string]any
	if req.QueryResult.Parameters != nil {
		params = *req.QueryResult.Parameters
	}

	reqCtx := ctx.Request().Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(reqCtx, s.timeout)
		defer cancel()
	}

	dedupKey := ""
	if req.ResponseId != nil && *req.ResponseId != "" && s.replies != nil {
		dedupKey = sessionID.String() + ":" + *req.ResponseId

		release, lockErr := s.inflight.acquire(reqCtx, dedupKey)
		if lockErr != nil {
			s.observe(intent, outcomeFailed)
			return ctx.JSON(http.StatusOK, servers.WebhookResponse{FulfillmentText: replyTryAgain})
		}
		defer release()

		if reply, cacheErr := s.replies.Get(reqCtx, dedupKey); cacheErr == nil {
			s.observe(intent, outcomeReplayed)
			return ctx.JSON(http.StatusOK, servers.WebhookResponse{FulfillmentText: reply})
		} else if !errors.Is(cacheErr, ports.ErrReplyNotCached) {
			s.logger.WarnContext(reqCtx, "reply cache lookup failed", "error", cacheErr)
		}
	}

	reply, outcome := s.dispatch(reqCtx, intent, sessionID, params)
	s.observe(intent, outcome)

	// A failed delivery is not cached, so its retry runs again.
	if dedupKey != "" && outcome != outcomeFailed {
		if cacheErr := s.replies.Set(reqCtx, dedupKey, reply); cacheErr != nil {
			s.logger.WarnContext(reqCtx, "reply cache store failed", "error", cacheErr)
		}
	}

	return ctx.JSON(http.StatusOK, servers.WebhookResponse{FulfillmentText: reply})
}

// dispatch runs the use case for intent and renders the reply.
func (s *Server) dispatch(
	ctx context.Context,
	intent Intent,
	sessionID kernel.SessionID,
	params map[string]any,
) (string, string) {
	switch intent {
	case IntentNewOrder:
		return s.newOrder(ctx, sessionID)
	case IntentAddItems:
		return s.addItems(ctx, sessionID, params)
	case IntentRemoveItems:
		return s.removeItems(ctx, sessionID, params)
	case IntentCompleteOrder:
		return s.completeOrder(ctx, sessionID)
	case IntentTrackOrder:
		return s.trackOrder(ctx, params)
	case IntentStoreHours:
		return s.storeHours, outcomeOK
	}
	return replyTryAgain, outcomeFailed
}

func (s *Server) newOrder(ctx context.Context, sessionID kernel.SessionID) (string, string) {
	cmd, err := commands.NewNewOrderCommand(sessionID)
	if err != nil {
		return s.failed(ctx, IntentNewOrder, err)
	}
	if err = s.handlers.NewOrder.Handle(ctx, cmd); err != nil {
		return s.failed(ctx, IntentNewOrder, err)
	}
	return replyNewOrder, outcomeOK
}

func (s *Server) addItems(ctx context.Context, sessionID kernel.SessionID, params map[string]any) (string, string) {
	items, quantities, reply, ok := deltaParams(params)
	if !ok {
		return reply, outcomeRejected
	}

	cmd, err := commands.NewAddItemsCommand(sessionID, items, quantities)
	if err != nil {
		return deltaRejected(err), outcomeRejected
	}

	summary, err := s.handlers.AddItems.Handle(ctx, cmd)
	if err != nil {
		return s.failed(ctx, IntentAddItems, err)
	}
	return replyAdded(summary), outcomeOK
}

func (s *Server) removeItems(ctx context.Context, sessionID kernel.SessionID, params map[string]any) (string, string) {
	items, quantities, reply, ok := deltaParams(params)
	if !ok {
		return reply, outcomeRejected
	}

	cmd, err := commands.NewRemoveItemsCommand(sessionID, items, quantities)
	if err != nil {
		return deltaRejected(err), outcomeRejected
	}

	summary, err := s.handlers.RemoveItems.Handle(ctx, cmd)
	var notInCart *cart.ItemNotInCartError
	switch {
	case err == nil:
		return replyRemoved(summary), outcomeOK
	case errors.Is(err, commands.ErrNoActiveOrder):
		return replyNoActiveOrder, outcomeRejected
	case errors.As(err, &notInCart):
		return replyNotInCart(notInCart.Item, notInCart.Quantity), outcomeRejected
	}
	return s.failed(ctx, IntentRemoveItems, err)
}

func (s *Server) completeOrder(ctx context.Context, sessionID kernel.SessionID) (string, string) {
	cmd, err := commands.NewCompleteOrderCommand(sessionID)
	if err != nil {
		return s.failed(ctx, IntentCompleteOrder, err)
	}

	started := time.Now()
	result, err := s.handlers.CompleteOrder.Handle(ctx, cmd)

	outcome := outcomeOK
	reply := ""
	switch {
	case err == nil:
		reply = replyPlaced(result)
	case errors.Is(err, commands.ErrNoActiveOrder):
		reply, outcome = replyNoActiveOrder, outcomeRejected
	case errors.Is(err, commands.ErrOrderAllocationFailed), errors.Is(err, commands.ErrOrderPersistFailed):
		reply, outcome = replyOrderNotPlaced, outcomeFailed
	default:
		reply, outcome = s.failed(ctx, IntentCompleteOrder, err)
	}

	if s.metrics != nil {
		s.metrics.ObserveFinalize(outcome, time.Since(started))
	}
	return reply, outcome
}

func (s *Server) trackOrder(ctx context.Context, params map[string]any) (string, string) {
	raw, present := params[paramNumber]
	if !present || raw == nil {
		return replyMissingOrderID, outcomeRejected
	}

	id, ok := orderNumber(raw)
	if !ok {
		return replyInvalidOrderID, outcomeRejected
	}

	query, err := queries.NewTrackOrderQuery(id)
	if err != nil {
		return replyInvalidOrderID, outcomeRejected
	}

	resp, err := s.handlers.TrackOrder.Handle(ctx, query)
	if err != nil {
		return s.failed(ctx, IntentTrackOrder, err)
	}
	if resp.State == queries.TrackingUnknown {
		return replyTracked(resp), outcomeFailed
	}
	return replyTracked(resp), outcomeOK
}

func (s *Server) failed(ctx context.Context, intent Intent, err error) (string, string) {
	s.logger.ErrorContext(ctx, "intent failed", "intent", intent.String(), "error", err)
	return replyTryAgain, outcomeFailed
}

func (s *Server) observe(intent Intent, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveIntent(intent.String(), outcome)
	}
}

// deltaParams extracts the parallel item and quantity lists. When either is
// missing the returned reply explains what to say instead.
func deltaParams(params map[string]any) ([]string, []int, string, bool) {
	items, err := stringList(params[paramFoodItems])
	if err != nil {
		return nil, nil, deltaRejected(err), false
	}
	quantities, err := quantityList(params[paramNumber])
	if err != nil {
		return nil, nil, deltaRejected(err), false
	}
	if len(items) == 0 || len(quantities) == 0 {
		return nil, nil, replyMissingItems, false
	}
	return items, quantities, "", true
}

func deltaRejected(err error) string {
	if errors.Is(err, cart.ErrInvalidQuantity) {
		return replyInvalidQuantity
	}
	return replyMismatch
}

// GetOrder handles GET /api/v1/orders/{orderId} - reads a placed order.
func (s *Server) GetOrder(ctx echo.Context, orderId int64) error {
	query, err := queries.NewGetOrderDetailsQuery(orderId)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	reqCtx := ctx.Request().Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(reqCtx, s.timeout)
		defer cancel()
	}

	details, err := s.handlers.OrderDetails.Handle(reqCtx, query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		s.logger.ErrorContext(reqCtx, "order lookup failed", "order_id", orderId, "error", err)
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Order storage is unavailable",
		})
	}

	response := servers.OrderDetails{
		OrderId: details.OrderID.Int64(),
		Status:  details.Status.String(),
		Items:   make([]servers.OrderLine, len(details.Lines)),
		Total:   details.Total.StringFixed(2),
	}
	for i, line := range details.Lines {
		response.Items[i] = servers.OrderLine{
			Item:      line.Item,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
