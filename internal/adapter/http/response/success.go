// Package response provides standardized HTTP response builders for the flight search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status is "ok" while the service accepts requests
	Status string `json:"status"`

	// Providers maps each supplier to its circuit breaker state
	// (closed, open or half_open), when breaker states are available
	Providers map[string]string `json:"providers,omitempty"`
}

// Health writes a health check response with per-provider circuit states.
func Health(c echo.Context, providers map[string]string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:    "ok",
		Providers: providers,
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}
