// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// NewFlight builds a one-segment MEX-CUN offer with full control over the
// fields that drive ranking and deduplication. Scenario tests use it when
// mock.SampleFlights is too coarse.
func NewFlight(provider, nativeOfferID, carrierCode, flightNumber string, price float64, departure time.Time) domain.Flight {
	offerID, _ := domain.EncodeOfferID(provider, nativeOfferID, "")

	return domain.Flight{
		OfferID:  offerID,
		Provider: provider,
		Price: domain.PriceInfo{
			Amount:   price,
			Currency: "USD",
		},
		Segments: []domain.FlightSegment{
			{
				Origin:        "MEX",
				Destination:   "CUN",
				DepartureTime: departure,
				ArrivalTime:   departure.Add(2*time.Hour + 10*time.Minute),
				Carrier:       domain.AirlineInfo{Code: carrierCode},
				FlightNumber:  flightNumber,
				Duration:      "PT2H10M",
				SliceIndex:    0,
			},
		},
		Duration:   domain.NewDurationInfo(130),
		CabinClass: domain.CabinEconomy,
	}
}
