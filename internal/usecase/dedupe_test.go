package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// duplicateOf returns a flight with the same structural identity (first
// segment carrier, flight number, departure) from another supplier at
// another price.
func duplicateOf(f domain.Flight, provider string, price float64) domain.Flight {
	dup := f
	dup.Provider = provider
	dup.OfferID = provider + "::dup"
	dup.Price = domain.PriceInfo{Amount: price, Currency: f.Price.Currency}
	dup.Segments = append([]domain.FlightSegment(nil), f.Segments...)
	return dup
}

func TestDeduplicateFlights_KeepsCheapest(t *testing.T) {
	base := createTestFlight("1", "duffel", 300, 120, 0)
	flights := []domain.Flight{
		base,
		duplicateOf(base, "kiwi", 250),
		duplicateOf(base, "amadeus", 280),
	}

	result := DeduplicateFlights(flights)

	require.Len(t, result, 1)
	assert.Equal(t, 250.0, result[0].Price.Amount)
	assert.Equal(t, "kiwi", result[0].Provider)
}

func TestDeduplicateFlights_PriceTieKeepsFirstEncountered(t *testing.T) {
	base := createTestFlight("1", "duffel", 300, 120, 0)
	flights := []domain.Flight{
		base,
		duplicateOf(base, "kiwi", 300),
	}

	result := DeduplicateFlights(flights)

	require.Len(t, result, 1)
	assert.Equal(t, "duffel", result[0].Provider)
}

func TestDeduplicateFlights_DistinctFlightsSurvive(t *testing.T) {
	flights := []domain.Flight{
		createTestFlight("1", "duffel", 300, 120, 0),
		createTestFlight("2", "duffel", 300, 120, 0), // different flight number
		createTestFlight("3", "kiwi", 250, 130, 1),
	}

	result := DeduplicateFlights(flights)

	assert.Len(t, result, 3)
}

func TestDeduplicateFlights_DifferentDeparturesNotCollapsed(t *testing.T) {
	morning := createTestFlight("1", "duffel", 300, 120, 0)

	evening := createTestFlight("1", "kiwi", 250, 120, 0)
	dep := evening.Segments[0].DepartureTime.Add(10 * time.Hour)
	evening.Segments[0].DepartureTime = dep
	evening.Segments[0].ArrivalTime = dep.Add(2 * time.Hour)

	result := DeduplicateFlights([]domain.Flight{morning, evening})

	assert.Len(t, result, 2)
}

func TestDeduplicateFlights_DifferentCarriersNotCollapsed(t *testing.T) {
	am := createTestFlight("1", "duffel", 300, 120, 0)
	ib := createTestFlight("1", "kiwi", 250, 120, 0)
	ib.Segments[0].Carrier.Code = "IB"

	result := DeduplicateFlights([]domain.Flight{am, ib})

	assert.Len(t, result, 2)
}

// TestDeduplicateFlights_ZoneRepresentationsCollapse checks that two
// suppliers reporting the same departure instant in different zones
// still group together.
func TestDeduplicateFlights_ZoneRepresentationsCollapse(t *testing.T) {
	utc := createTestFlight("1", "duffel", 300, 120, 0) // departs 08:00 UTC

	local := createTestFlight("1", "kiwi", 250, 120, 0)
	dep := time.Date(2026, 9, 1, 2, 0, 0, 0, time.FixedZone("CST", -6*3600))
	local.Segments[0].DepartureTime = dep
	local.Segments[0].ArrivalTime = dep.Add(2 * time.Hour)

	result := DeduplicateFlights([]domain.Flight{utc, local})

	require.Len(t, result, 1)
	assert.Equal(t, 250.0, result[0].Price.Amount)
}

func TestDeduplicateFlights_PreservesEncounterOrder(t *testing.T) {
	first := createTestFlight("1", "duffel", 300, 120, 0)
	other := createTestFlight("2", "amadeus", 500, 150, 1)
	cheaperDup := duplicateOf(first, "kiwi", 250)

	result := DeduplicateFlights([]domain.Flight{first, other, cheaperDup})

	require.Len(t, result, 2)
	// The cheaper duplicate replaced the first entry in place.
	assert.Equal(t, 250.0, result[0].Price.Amount)
	assert.Equal(t, "amadeus", result[1].Provider)
}

func TestDeduplicateFlights_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, DeduplicateFlights(nil))

	single := []domain.Flight{createTestFlight("1", "duffel", 300, 120, 0)}
	assert.Len(t, DeduplicateFlights(single), 1)
}

func TestDeduplicateFlights_SegmentlessFlightsNeverGroup(t *testing.T) {
	a := domain.Flight{OfferID: "duffel::1", Provider: "duffel", Price: domain.PriceInfo{Amount: 100, Currency: "USD"}}
	b := domain.Flight{OfferID: "kiwi::2", Provider: "kiwi", Price: domain.PriceInfo{Amount: 90, Currency: "USD"}}

	result := DeduplicateFlights([]domain.Flight{a, b})

	assert.Len(t, result, 2)
}

func TestDeduplicateFlights_DoesNotMutateInput(t *testing.T) {
	base := createTestFlight("1", "duffel", 300, 120, 0)
	flights := []domain.Flight{
		base,
		duplicateOf(base, "kiwi", 250),
	}

	_ = DeduplicateFlights(flights)

	assert.Equal(t, 300.0, flights[0].Price.Amount)
	assert.Equal(t, "duffel", flights[0].Provider)
}
