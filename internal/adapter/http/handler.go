// Package http provides the HTTP transport for the flight search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/http/response"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/usecase"
)

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	engine   usecase.SearchEngine
	breakers *resilience.BreakerStore
}

// NewFlightHandler creates a FlightHandler. The breaker store is
// optional; when present the health endpoint reports per-provider
// circuit states.
func NewFlightHandler(engine usecase.SearchEngine, breakers *resilience.BreakerStore) *FlightHandler {
	return &FlightHandler{
		engine:   engine,
		breakers: breakers,
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Search for available flights across the configured suppliers
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search request"
// @Success 200 {object} SwaggerSearchResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 504 {object} response.ErrorDetail "Request timed out or was cancelled"
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.engine.Search(c.Request().Context(), ToSearchRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// DecodeOffer handles GET /api/v1/offers/:offerID
//
// @Summary Decode a composite offer identifier
// @Description Split an offer identifier into its provider, native offer and passenger parts
// @Tags offers
// @Produce json
// @Param offerID path string true "Composite offer identifier"
// @Success 200 {object} DecodedOfferResponse
// @Failure 400 {object} response.ErrorDetail "Malformed offer identifier"
// @Router /api/v1/offers/{offerID} [get]
func (h *FlightHandler) DecodeOffer(c echo.Context) error {
	offerID := c.Param("offerID")

	ref, err := domain.DecodeOfferID(offerID)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.OK(c, NewDecodedOfferResponse(offerID, ref))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps search errors to HTTP responses. Provider failures
// never surface here: the engine absorbs them into result metadata, so
// only request-shaped and context errors remain.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	if domain.IsInvalidRequest(err) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	return response.InternalServerError(c)
}

// Health handles GET /health
//
// @Summary Health check
// @Description Report service liveness and per-provider circuit breaker states
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	if h.breakers == nil {
		return response.Health(c, nil)
	}

	states := h.breakers.States()
	providers := make(map[string]string, len(states))
	for name, state := range states {
		providers[name] = state.String()
	}

	return response.Health(c, providers)
}
