package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterDeps struct {
	Server        *Server
	Authenticator *Authenticator
	Metrics       *Metrics
	Document      *openapi3.T
	Logger        *slog.Logger
}

// NewRouter wires the API behind bearer authentication and request
// validation. /health, /metrics and the swagger UI are public.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	validator, err := RequestValidator(deps.Document)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(deps.Logger.With("component", "http")))
	e.Use(deps.Metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", deps.Metrics.Handler())
	if err = registerSwaggerUI(e, deps.Document); err != nil {
		return nil, err
	}

	api := e.Group("/api/v1", deps.Authenticator.Middleware(), validator)
	api.POST("/orders", deps.Server.CreateOrder)
	api.GET("/orders", deps.Server.ListOrders)
	api.GET("/orders/:orderId", deps.Server.GetOrder)
	api.POST("/orders/:orderId/action", deps.Server.ActionOrder)

	return e, nil
}
