// Package mock provides test doubles for the flight search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and partial failures.
type Provider struct {
	name      string
	flights   []domain.Flight
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name: name,
	}
}

// WithFlights configures the provider to return the given flights.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.flights = flights
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search.
// It respects context cancellation, applies the configured delay,
// and returns the configured flights or error.
func (p *Provider) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Flight, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	// Check context after delay
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if p.err != nil {
		return nil, p.err
	}

	return p.flights, nil
}

// CallCount returns the number of times Search was called.
// This is useful for verifying provider interactions.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// Ensure Provider implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Provider)(nil)

// sampleCarriers rotates realistic marketing carriers across generated
// offers so tests exercise airline filters.
var sampleCarriers = []domain.AirlineInfo{
	{Code: "AM", Name: "Aeromexico"},
	{Code: "Y4", Name: "Volaris"},
	{Code: "VB", Name: "Viva Aerobus"},
}

// SampleFlights returns count distinct flight offers attributed to the
// given provider. Flight numbers are offset per provider, so samples from
// different providers are distinct physical flights and never collapse in
// deduplication. All offers are changeable and refundable, so the
// flexibility tiers keep them all.
func SampleFlights(provider string, count int) []domain.Flight {
	flights := make([]domain.Flight, count)

	baseTime := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	seed := providerSeed(provider)

	for i := 0; i < count; i++ {
		departure := baseTime.Add(time.Duration(i*2) * time.Hour)
		arrival := departure.Add(2*time.Hour + 10*time.Minute)
		carrier := sampleCarriers[i%len(sampleCarriers)]
		flightNumber := fmt.Sprintf("%d", 100+seed+i)

		offerID, _ := domain.EncodeOfferID(provider, fmt.Sprintf("off_%s_%d", provider, i+1), "")

		flights[i] = domain.Flight{
			OfferID:  offerID,
			Provider: provider,
			Price: domain.PriceInfo{
				Amount:   200 + float64(i*25),
				Currency: "USD",
			},
			Segments: []domain.FlightSegment{
				{
					Origin:        "MEX",
					Destination:   "CUN",
					DepartureTime: departure,
					ArrivalTime:   arrival,
					Carrier:       carrier,
					FlightNumber:  flightNumber,
					Duration:      "PT2H10M",
					SliceIndex:    0,
				},
			},
			Duration:   domain.NewDurationInfo(130),
			CabinClass: domain.CabinEconomy,
			Refundable: true,
			Conditions: domain.Conditions{
				Changeable: true,
			},
		}
	}

	return flights
}

// providerSeed derives a deterministic flight number offset from the
// provider name. Distinct names used in the same test must not share a
// byte sum modulo the block size, and never do in practice.
func providerSeed(provider string) int {
	sum := 0
	for _, b := range []byte(provider) {
		sum += int(b)
	}
	return sum % 700
}
