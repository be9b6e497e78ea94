// Package kiwi implements the Kiwi (Tequila) flight supplier adapter.
//
// Kiwi searches with a flat GET endpoint and returns itineraries as a
// flat route array tagged by direction. It is the only wired supplier
// with a native departure-time filter, which the adapter uses when the
// request carries a time-of-day preference.
package kiwi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/providerutil"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
)

// ProviderName is the unique identifier for the Kiwi provider.
const ProviderName = "kiwi"

// searchPath is the Tequila search endpoint.
const searchPath = "/v2/search"

// maxResults caps how many itineraries one search asks the supplier
// for.
const maxResults = 50

// kiwiDateLayout is the DD/MM/YYYY format the search endpoint expects.
const kiwiDateLayout = "02/01/2006"

// selectedCabins maps domain cabin classes to Tequila cabin codes.
var selectedCabins = map[domain.CabinClass]string{
	domain.CabinEconomy:        "M",
	domain.CabinPremiumEconomy: "W",
	domain.CabinBusiness:       "C",
	domain.CabinFirst:          "F",
}

// Config holds the supplier connection settings.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.tequila.kiwi.com"
	BaseURL string

	// APIKey is sent in the apikey header
	APIKey string

	// Currency requests itinerary prices in a specific currency
	Currency string
}

// Adapter searches flights through the Kiwi Tequila API.
type Adapter struct {
	cfg    Config
	client *http.Client
	exec   *resilience.Executor
	log    *logger.Logger
}

// NewAdapter creates a Kiwi adapter. The HTTP client and logger may be
// nil, in which case defaults are used.
func NewAdapter(cfg Config, client *http.Client, exec *resilience.Executor, log *logger.Logger) *Adapter {
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	return &Adapter{
		cfg:    cfg,
		client: client,
		exec:   exec,
		log:    log.WithProvider(ProviderName),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search queries itineraries for the journey. The search endpoint
// prices one-way and round-trip journeys only, so multi-city requests
// yield no offers from this supplier.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	if req.IsMultiCity() {
		return nil, nil
	}

	query, err := buildQuery(req, a.cfg.Currency)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	resp, err := resilience.Execute(ctx, a.exec, ProviderName, func(ctx context.Context) (*KiwiResponse, error) {
		return a.searchItineraries(ctx, query)
	})
	if err != nil {
		return nil, providerutil.WrapError(ProviderName, err)
	}

	return a.normalize(resp, req), nil
}

// buildQuery maps the domain request onto the search parameters. A
// time-of-day preference becomes the native dtime_from/dtime_to
// departure filter.
func buildQuery(req domain.SearchRequest, currency string) (url.Values, error) {
	departureDate, err := toKiwiDate(req.Slices[0].DepartureDate)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("fly_from", req.Slices[0].Origin)
	query.Set("fly_to", req.Slices[0].Destination)
	query.Set("date_from", departureDate)
	query.Set("date_to", departureDate)

	if req.IsRoundTrip() {
		returnDate, err := toKiwiDate(req.Slices[1].DepartureDate)
		if err != nil {
			return nil, err
		}
		query.Set("return_from", returnDate)
		query.Set("return_to", returnDate)
	}

	adults := req.Passengers
	if adults < 1 {
		adults = 1
	}
	query.Set("adults", strconv.Itoa(adults))

	if cabin, ok := selectedCabins[req.CabinClass]; ok {
		query.Set("selected_cabins", cabin)
	}

	if req.TimeOfDay != "" && req.TimeOfDay != domain.TimeOfDayAny {
		start, end := req.TimeOfDay.Window()
		query.Set("dtime_from", fmt.Sprintf("%02d:00", start))
		query.Set("dtime_to", fmt.Sprintf("%02d:00", end))
	}

	query.Set("curr", currency)
	query.Set("limit", strconv.Itoa(maxResults))
	return query, nil
}

// toKiwiDate converts a YYYY-MM-DD date to the DD/MM/YYYY form.
func toKiwiDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return t.Format(kiwiDateLayout), nil
}

// searchItineraries performs the HTTP exchange for one attempt.
func (a *Adapter) searchItineraries(ctx context.Context, query url.Values) (*KiwiResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("apikey", a.cfg.APIKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError(resp.StatusCode, resp.Status)
	}

	var out KiwiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}
