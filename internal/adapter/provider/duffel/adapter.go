// Package duffel implements the Duffel flight supplier adapter.
//
// Duffel prices a journey through an offer request: the adapter POSTs
// the requested slices and receives the priced offers inline. Offers
// are short-lived in sandbox mode, so offers about to expire are
// dropped during normalization.
package duffel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/providerutil"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// ProviderName is the unique identifier for the Duffel provider.
const ProviderName = "duffel"

// apiVersion is sent in the Duffel-Version header on every request.
const apiVersion = "v2"

// offerRequestPath creates an offer request and, with
// return_offers=true, returns its offers in the same response.
const offerRequestPath = "/air/offer_requests"

// DefaultMinOfferValidity is how much lifetime an offer must have left
// to be worth returning to a caller who still needs time to book it.
const DefaultMinOfferValidity = 5 * time.Minute

// Config holds the supplier connection settings.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.duffel.com"
	BaseURL string

	// APIToken is the bearer token for the Authorization header
	APIToken string

	// MinOfferValidity drops offers expiring sooner than this window
	MinOfferValidity time.Duration
}

// Adapter searches flights through the Duffel API.
type Adapter struct {
	cfg    Config
	client *http.Client
	exec   *resilience.Executor
	clock  timeutil.Clock
	log    *logger.Logger
}

// NewAdapter creates a Duffel adapter. The HTTP client, clock and
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
	if cfg.MinOfferValidity <= 0 {
		cfg.MinOfferValidity = DefaultMinOfferValidity
	}
	return &Adapter{
		cfg:    cfg,
		client: client,
		exec:   exec,
		clock:  clock,
		log:    log.WithProvider(ProviderName),
	}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search creates an offer request for the journey and normalizes the
// returned offers into domain flights.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	resp, err := resilience.Execute(ctx, a.exec, ProviderName, func(ctx context.Context) (*DuffelResponse, error) {
		return a.createOfferRequest(ctx, body)
	})
	if err != nil {
		return nil, providerutil.WrapError(ProviderName, err)
	}

	return a.normalize(resp, req), nil
}

// buildRequest maps the domain request onto Duffel's offer request.
func buildRequest(req domain.SearchRequest) DuffelRequest {
	slices := make([]DuffelRequestSlice, 0, len(req.Slices))
	for _, s := range req.Slices {
		slices = append(slices, DuffelRequestSlice{
			Origin:        s.Origin,
			Destination:   s.Destination,
			DepartureDate: s.DepartureDate,
		})
	}

	passengers := make([]DuffelRequestPassenger, 0, req.Passengers)
	for i := 0; i < req.Passengers; i++ {
		passengers = append(passengers, DuffelRequestPassenger{Type: "adult"})
	}

	return DuffelRequest{
		Data: DuffelOfferRequest{
			Slices:     slices,
			Passengers: passengers,
			CabinClass: string(req.CabinClass),
		},
	}
}

// createOfferRequest performs the HTTP exchange for one attempt.
func (a *Adapter) createOfferRequest(ctx context.Context, body []byte) (*DuffelResponse, error) {
	url := a.cfg.BaseURL + offerRequestPath + "?return_offers=true"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.cfg.APIToken)
	httpReq.Header.Set("Duffel-Version", apiVersion)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, resilience.NewStatusError(resp.StatusCode, resp.Status)
	}

	var out DuffelResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode offer request response: %w", err)
	}
	return &out, nil
}
