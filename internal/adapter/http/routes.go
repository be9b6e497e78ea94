// Package http provides the HTTP transport for the flight search API.
package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
)

// RegisterRoutes registers all flight search API routes. It creates a
// versioned API group and attaches the handler methods, plus the
// operational endpoints (health, metrics, swagger).
func RegisterRoutes(e *echo.Echo, h *FlightHandler, m *metrics.Metrics) {
	// Operational endpoints live at the root, outside the API version
	e.GET("/health", h.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	api := e.Group("/api/v1")

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)

	offers := api.Group("/offers")
	offers.GET("/:offerID", h.DecodeOffer)
}
