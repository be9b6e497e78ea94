// Package integration provides helpers and integration tests for the flight
// search system. Integration tests verify that components work together
// correctly: HTTP handlers, middleware, the search engine, and mock providers.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	flighthttp "github.com/edsonnoyola/Biajez-sub000/internal/adapter/http"
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/http/middleware"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/usecase"
)

// TestServer wraps a fully wired Echo instance: request-id propagation,
// request logging (discarded), metrics, panic recovery, and all routes.
type TestServer struct {
	Echo    *echo.Echo
	Metrics *metrics.Metrics
}

// NewTestServer creates a test server around the given engine. The breaker
// store may be nil when the health endpoint's provider states don't matter.
func NewTestServer(engine usecase.SearchEngine, breakers *resilience.BreakerStore) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := metrics.New(prometheus.NewRegistry())
	middleware.Setup(e, logger.Nop(), m)

	handler := flighthttp.NewFlightHandler(engine, breakers)
	flighthttp.RegisterRoutes(e, handler, m)

	return &TestServer{
		Echo:    e,
		Metrics: m,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search request body.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/flights/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResult parses the response body as a SearchResult.
func (r *Response) ParseSearchResult() (*domain.SearchResult, error) {
	var result domain.SearchResult
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin           string `json:"origin,omitempty"`
	Destination      string `json:"destination,omitempty"`
	DepartureDate    string `json:"departureDate,omitempty"`
	ReturnDate       string `json:"returnDate,omitempty"`
	Passengers       int    `json:"passengers,omitempty"`
	CabinClass       string `json:"cabinClass,omitempty"`
	PreferredAirline string `json:"preferredAirline,omitempty"`
	TimeOfDay        string `json:"timeOfDay,omitempty"`
}

// DefaultSearchRequest returns a valid one-way search request body.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "MEX",
		Destination:   "CUN",
		DepartureDate: "2026-09-01",
		Passengers:    1,
	}
}

// DefaultDomainRequest returns a valid one-way request for driving the
// engine directly.
func DefaultDomainRequest() domain.SearchRequest {
	return domain.NewOneWaySearch("MEX", "CUN", "2026-09-01")
}

// NewEngine builds a search engine over the given providers with short
// test timeouts and no cache.
func NewEngine(providers ...domain.FlightProvider) usecase.SearchEngine {
	return NewEngineWithConfig(TestConfig(), nil, providers...)
}

// NewEngineWithConfig builds a search engine with explicit configuration
// and an optional cache.
func NewEngineWithConfig(cfg *usecase.Config, cache usecase.ResultCache, providers ...domain.FlightProvider) usecase.SearchEngine {
	registry := domain.NewProviderRegistry()
	for _, p := range providers {
		registry.Register(p)
	}
	return usecase.NewSearchEngine(registry, cache, cfg, logger.Nop(), metrics.Nop())
}

// TestConfig returns an engine config with tight timeouts so timeout
// scenarios finish quickly.
func TestConfig() *usecase.Config {
	cfg := usecase.DefaultConfig()
	cfg.GlobalTimeout = 2 * time.Second
	cfg.ProviderTimeout = 1 * time.Second
	return &cfg
}

// MemoryCache is an in-memory ResultCache that records its traffic, for
// asserting on the engine's cache behavior without Redis.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]domain.Flight

	Gets    int
	Hits    int
	Sets    int
	LastTTL time.Duration
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]domain.Flight),
	}
}

// Get returns the cached flights for key, recording the lookup. The
// result is a copy: the engine scores flights in place, and the real
// cache decodes a fresh slice on every lookup.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]domain.Flight, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Gets++
	flights, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	m.Hits++

	out := make([]domain.Flight, len(flights))
	copy(out, flights)
	return out, true, nil
}

// Set stores flights under key, recording the write and its TTL.
func (m *MemoryCache) Set(ctx context.Context, key string, flights []domain.Flight, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sets++
	m.LastTTL = ttl
	m.entries[key] = flights
	return nil
}

var _ usecase.ResultCache = (*MemoryCache)(nil)
