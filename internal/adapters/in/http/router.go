package http

import (
	"errors"
	"log/slog"
	"net/http"

	_ "foodbot/internal/generated/docs"
	"foodbot/internal/generated/servers"
	"foodbot/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: request ids, panic recovery, access
// logging, OpenAPI request validation, the API routes, swagger UI and, when m
// is set, the Prometheus endpoint.
func NewRouter(server *Server, m *metrics.Metrics, logger *slog.Logger) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}
	accessLog := logger.With("component", "http.access")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				accessLog.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			accessLog.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	validator, err := OpenAPIValidator()
	if err != nil {
		return nil, err
	}
	e.Use(validator)

	servers.RegisterHandlers(e, server)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = http.StatusText(code)
			if text, ok := he.Message.(string); ok {
				message = text
			}
		}
		_ = c.JSON(code, servers.Error{Code: int32(code), Message: message})
	}

	return e, nil
}
