// Package amadeus implements the Amadeus flight supplier adapter.
//
// Amadeus authenticates with an OAuth2 client-credentials grant; the
// adapter caches the access token across searches and renews it on
// expiry. Offers arrive as itineraries of segments with zone-less
// local timestamps, which are interpreted in each airport's timezone.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/providerutil"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// ProviderName is the unique identifier for the Amadeus provider.
const ProviderName = "amadeus"

// searchPath is the flight offers search endpoint.
const searchPath = "/v2/shopping/flight-offers"

// maxOffers caps how many offers one search asks the supplier for.
const maxOffers = 50

// travelClasses maps domain cabin classes to Amadeus travel classes.
var travelClasses = map[domain.CabinClass]string{
	domain.CabinEconomy:        "ECONOMY",
	domain.CabinPremiumEconomy: "PREMIUM_ECONOMY",
	domain.CabinBusiness:       "BUSINESS",
	domain.CabinFirst:          "FIRST",
}

// Config holds the supplier connection settings.
type Config struct {
	// BaseURL is the API root, e.g. "https://test.api.amadeus.com"
	BaseURL string

	// APIKey and APISecret are the OAuth2 client credentials
	APIKey    string
	APISecret string

	// Currency requests offer prices in a specific currency
	Currency string
}

// Adapter searches flights through the Amadeus API.
type Adapter struct {
	cfg    Config
	client *http.Client
	exec   *resilience.Executor
	tokens *tokenManager
	log    *logger.Logger
}

// NewAdapter creates an Amadeus adapter. The HTTP client, clock and
// logger may be nil, in which case defaults are used.
func NewAdapter(cfg Config, client *http.Client, exec *resilience.Executor, clock timeutil.Clock, log *logger.Logger) *Adapter {
	if client == nil {
		client = &http.Client{}
	}
	if clock == nil {
		clock = timeutil.RealClock{}
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
		tokens: newTokenManager(cfg.BaseURL, cfg.APIKey, cfg.APISecret, client, clock),
		log:    log.WithProvider(ProviderName),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search queries flight offers for the journey. The offers search
// endpoint prices one-way and round-trip journeys only, so multi-city
// requests yield no offers from this supplier.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	if req.IsMultiCity() {
		return nil, nil
	}

	query := buildQuery(req, a.cfg.Currency)

	resp, err := resilience.Execute(ctx, a.exec, ProviderName, func(ctx context.Context) (*AmadeusResponse, error) {
		return a.searchOffers(ctx, query)
	})
	if err != nil {
		return nil, providerutil.WrapError(ProviderName, err)
	}

	return a.normalize(resp, req), nil
}

// buildQuery maps the domain request onto the search parameters.
func buildQuery(req domain.SearchRequest, currency string) url.Values {
	query := url.Values{}
	query.Set("originLocationCode", req.Slices[0].Origin)
	query.Set("destinationLocationCode", req.Slices[0].Destination)
	query.Set("departureDate", req.Slices[0].DepartureDate)
	if req.IsRoundTrip() {
		query.Set("returnDate", req.Slices[1].DepartureDate)
	}

	adults := req.Passengers
	if adults < 1 {
		adults = 1
	}
	query.Set("adults", strconv.Itoa(adults))

	if travelClass, ok := travelClasses[req.CabinClass]; ok {
		query.Set("travelClass", travelClass)
	}
	query.Set("currencyCode", currency)
	query.Set("max", strconv.Itoa(maxOffers))
	return query
}

// searchOffers performs the HTTP exchange for one attempt, fetching an
// access token first when the cached one has expired.
func (a *Adapter) searchOffers(ctx context.Context, query url.Values) (*AmadeusResponse, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+searchPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// The token was revoked or expired server-side; the next
		// attempt will fetch a fresh one.
		a.tokens.Invalidate()
		return nil, resilience.NewStatusError(resp.StatusCode, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError(resp.StatusCode, resp.Status)
	}

	var out AmadeusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode offers response: %w", err)
	}
	return &out, nil
}
