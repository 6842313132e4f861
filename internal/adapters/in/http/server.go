// Package http exposes the order use cases over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"salesorder/internal/core/application/usecases/commands"
	"salesorder/internal/core/application/usecases/queries"
	"salesorder/internal/core/domain/model/kernel"
	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/result"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) result.Result[kernel.UUID]
	}

	ActionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ActionOrderCommand) result.Result[bool]
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, q queries.ListOrdersQuery) result.Result[[]queries.OrderView]
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, q queries.GetOrderQuery) result.Result[queries.OrderView]
	}
)

// Server translates HTTP requests into commands and queries and their
// results into envelopes.
type Server struct {
	createOrder CreateOrderHandler
	actionOrder ActionOrderHandler
	listOrders  ListOrdersHandler
	getOrder    GetOrderHandler

	logger *slog.Logger
	now    func() time.Time
}

// NewServer creates the API handlers.
func NewServer(
	createOrder CreateOrderHandler,
	actionOrder ActionOrderHandler,
	listOrders ListOrdersHandler,
	getOrder GetOrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrder: createOrder,
		actionOrder: actionOrder,
		listOrders:  listOrders,
		getOrder:    getOrder,
		logger:      logger.With("component", "http_server"),
		now:         time.Now,
	}
}

// CreateOrder handles POST /api/v1/orders. A missing orderDate means now.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "missing caller")
	}

	var body NewOrderRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	orderDate := s.now()
	if body.OrderDate != nil {
		orderDate = *body.OrderDate
	}

	items := make([]commands.ItemRequest, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, commands.ItemRequest{
			ProductID: kernel.UUIDFromGoogle(it.ProductID),
			Quantity:  it.Quantity,
		})
	}

	key := c.Request().Header.Get(HeaderIdempotencyKey)
	cmd, err := commands.NewCreateOrderCommand(caller, orderDate, items, key)
	if err != nil {
		return respond(c, result.FromError[kernel.UUID](err), nil)
	}

	res := s.createOrder.Handle(c.Request().Context(), cmd)
	s.logFault(c, res.Status(), res.Message())
	return respond(c, res, func(id kernel.UUID) any {
		return CreatedOrder{OrderID: id.String()}
	})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "missing caller")
	}

	var (
		statusParam *string
		from, to    *time.Time
	)
	params := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &statusParam); err != nil {
		return fail(c, http.StatusBadRequest, "invalid parameter status")
	}
	if err := runtime.BindQueryParameter("form", true, false, "from", params, &from); err != nil {
		return fail(c, http.StatusBadRequest, "invalid parameter from")
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", params, &to); err != nil {
		return fail(c, http.StatusBadRequest, "invalid parameter to")
	}

	var status *order.Status
	if statusParam != nil {
		parsed, err := order.ParseStatus(*statusParam)
		if err != nil {
			return respond(c, result.FromError[[]queries.OrderView](err), nil)
		}
		status = &parsed
	}

	q, err := queries.NewListOrdersQuery(caller, status, from, to)
	if err != nil {
		return respond(c, result.FromError[[]queries.OrderView](err), nil)
	}

	res := s.listOrders.Handle(c.Request().Context(), q)
	s.logFault(c, res.Status(), res.Message())
	return respond(c, res, func(views []queries.OrderView) any {
		return toOrders(views)
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "missing caller")
	}

	orderID, err := bindOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid parameter orderId")
	}

	q, err := queries.NewGetOrderQuery(caller, orderID)
	if err != nil {
		return respond(c, result.FromError[queries.OrderView](err), nil)
	}

	res := s.getOrder.Handle(c.Request().Context(), q)
	s.logFault(c, res.Status(), res.Message())
	return respond(c, res, func(v queries.OrderView) any {
		return toOrder(v)
	})
}

// ActionOrder handles POST /api/v1/orders/{orderId}/action.
func (s *Server) ActionOrder(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "missing caller")
	}

	orderID, err := bindOrderID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid parameter orderId")
	}

	var body OrderActionRequest
	if err = c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return respond(c, result.FromError[bool](err), nil)
	}

	cmd, err := commands.NewActionOrderCommand(orderID, caller, target)
	if err != nil {
		return respond(c, result.FromError[bool](err), nil)
	}

	res := s.actionOrder.Handle(c.Request().Context(), cmd)
	s.logFault(c, res.Status(), res.Message())
	return respond(c, res, func(updated bool) any {
		return updated
	})
}

func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromGoogle(id), nil
}

func (s *Server) logFault(c echo.Context, status result.Status, message string) {
	if status != result.InternalServerError {
		return
	}
	s.logger.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", message,
	)
}
