package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
)

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - first, so every later stage can correlate by request ID
//  2. RequestLogger - logs all requests with the request ID
//  3. HTTPMetrics - records counts and latency for the committed status
//  4. Recover - innermost, catches panics before they reach the logger
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger, m *metrics.Metrics) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(HTTPMetrics(m))
	e.Use(Recover(log))
}
