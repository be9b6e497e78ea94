package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
)

// HTTPMetrics returns middleware that records request counts and
// latencies. The path label uses the route template (e.g.
// "/api/v1/offers/:offerID") rather than the raw URL to keep the
// metric cardinality bounded.
func HTTPMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.IncHTTPRequestsTotal(method, path, status)
			m.ObserveHTTPRequestDuration(method, path, status, time.Since(start).Seconds())

			return nil
		}
	}
}
