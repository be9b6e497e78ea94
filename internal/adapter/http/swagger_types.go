// Package http provides swagger type definitions for API documentation.
// These types mirror domain types but are defined here to help swag generate proper documentation.
package http

import "time"

// SwaggerSearchResult represents the search API response for swagger documentation.
// @Description Ranked flight search results with execution metadata
type SwaggerSearchResult struct {
	// SearchID uniquely identifies this search execution
	SearchID string `json:"search_id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`

	// Metadata contains information about the search execution
	Metadata SwaggerSearchMetadata `json:"metadata"`

	// Flights contains the ranked flight results
	Flights []SwaggerFlight `json:"flights"`
}

// SwaggerSearchMetadata contains metadata about the search execution.
// @Description Metadata about the search execution
type SwaggerSearchMetadata struct {
	// TotalResults is the total number of flights returned
	TotalResults int `json:"total_results" example:"15"`

	// ProvidersQueried is the number of suppliers that were queried
	ProvidersQueried int `json:"providers_queried" example:"3"`

	// ProvidersSucceeded is the number of suppliers that answered successfully
	ProvidersSucceeded int `json:"providers_succeeded" example:"2"`

	// ProvidersFailed is the number of suppliers that failed or timed out
	ProvidersFailed int `json:"providers_failed" example:"1"`

	// FailedProviders lists the names of suppliers that failed
	FailedProviders []string `json:"failed_providers,omitempty" example:"kiwi"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms" example:"1250"`

	// CacheHit indicates whether the merged supplier results came from cache
	CacheHit bool `json:"cache_hit" example:"false"`
}

// SwaggerFlight represents a single flight offer.
// @Description Normalized flight offer from a supplier
type SwaggerFlight struct {
	// OfferID is the portable composite offer identifier
	OfferID string `json:"offerId" example:"duffel::off_00009htYpSCXrwaB9DnUm0::pas_00009hj8USM7Ncg31cBCLL"`

	// Provider identifies which supplier this offer came from
	Provider string `json:"provider" example:"duffel"`

	// Price contains the total price for all passengers
	Price SwaggerPriceInfo `json:"price"`

	// Segments lists every flight segment across all slices
	Segments []SwaggerFlightSegment `json:"segments"`

	// Duration is the total duration of the first slice
	Duration SwaggerDurationInfo `json:"duration"`

	// CabinClass is the booked cabin class
	CabinClass string `json:"cabinClass" example:"economy"`

	// Refundable reports whether the fare allows refunds before departure
	Refundable bool `json:"refundable" example:"true"`

	// Conditions carries fare flexibility details
	Conditions SwaggerConditions `json:"conditions"`

	// Score is the ranking score computed for this search
	Score float64 `json:"score,omitempty" example:"185"`
}

// SwaggerFlightSegment represents one flown leg of a journey.
// @Description One flown segment of a flight offer
type SwaggerFlightSegment struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin" example:"MEX"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination" example:"CUN"`

	// DepartureTime is the scheduled departure in the airport's local time
	DepartureTime time.Time `json:"departureTime" example:"2026-09-01T08:15:00-06:00"`

	// ArrivalTime is the scheduled arrival in the airport's local time
	ArrivalTime time.Time `json:"arrivalTime" example:"2026-09-01T11:25:00-05:00"`

	// Carrier is the marketing carrier for this segment
	Carrier SwaggerAirlineInfo `json:"carrier"`

	// FlightNumber is the carrier's flight number
	FlightNumber string `json:"flightNumber" example:"512"`

	// Duration is the segment duration in ISO 8601 form
	Duration string `json:"duration" example:"PT2H10M"`

	// SliceIndex is the journey slice this segment belongs to
	SliceIndex int `json:"sliceIndex" example:"0"`
}

// SwaggerAirlineInfo contains information about an airline.
// @Description Airline information
type SwaggerAirlineInfo struct {
	// Code is the IATA airline designator
	Code string `json:"code" example:"AM"`

	// Name is the full airline name
	Name string `json:"name,omitempty" example:"Aeromexico"`
}

// SwaggerDurationInfo contains flight duration information.
// @Description Flight duration information
type SwaggerDurationInfo struct {
	// TotalMinutes is the total duration in minutes
	TotalMinutes int `json:"totalMinutes" example:"130"`

	// Formatted is a human-readable duration string
	Formatted string `json:"formatted" example:"2h 10m"`
}

// SwaggerPriceInfo contains pricing information.
// @Description Price information
type SwaggerPriceInfo struct {
	// Amount is the price value
	Amount float64 `json:"amount" example:"214.30"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency" example:"USD"`
}

// SwaggerConditions contains fare flexibility details.
// @Description Fare flexibility conditions
type SwaggerConditions struct {
	// Changeable reports whether the fare allows changes before departure
	Changeable bool `json:"changeable" example:"true"`

	// ChangePenalty is the fee charged for a change, when known
	ChangePenalty *SwaggerPriceInfo `json:"changePenalty,omitempty"`

	// RefundPenalty is the fee charged for a refund, when known
	RefundPenalty *SwaggerPriceInfo `json:"refundPenalty,omitempty"`

	// PassengerIDs are the supplier's raw passenger identifiers
	PassengerIDs []string `json:"passengerIds,omitempty" example:"pas_00009hj8USM7Ncg31cBCLL"`
}
