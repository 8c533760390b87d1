// Package http is the inbound REST adapter built on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"dronedelivery/internal/adapters/in/http/openapi"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter wires the server's handlers, request validation against doc,
// access logging, Swagger UI and, when metrics is not nil, /metrics.
func NewRouter(s *Server, doc *openapi3.T, metrics http.Handler, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := openapi.RegisterSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(accessLog(logger.With("component", "http_access")))
	e.Use(validator)

	e.GET("/health", s.Health)
	e.GET("/uuid", s.GetUUID)
	e.POST("/distanceTo", s.DistanceTo)
	e.POST("/isCloseTo", s.IsCloseTo)
	e.POST("/nextPosition", s.NextPosition)
	e.POST("/isInRegion", s.IsInRegion)
	e.POST("/validateOrder", s.ValidateOrder)
	e.POST("/calcDeliveryPath", s.CalcDeliveryPath)
	e.POST("/calcDeliveryPathAsGeoJson", s.CalcDeliveryPathAsGeoJSON)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	return e, nil
}

func accessLog(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "HTTP request", attrs...)
			return nil
		},
	})
}
