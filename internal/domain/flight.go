// Package domain contains the core business entities and rules for the flight search system.
// These entities are supplier-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"fmt"
	"time"
)

// Flight represents a single normalized flight offer from a supplier.
// It contains all the information needed to display, compare, and later
// reference the offer, regardless of which supplier produced it.
type Flight struct {
	// OfferID is the portable composite identifier for this offer.
	// It embeds the provider and the provider's native offer identifier
	// (see EncodeOfferID) so the offer can be referenced across systems.
	OfferID string `json:"offerId"`

	// Provider identifies which supplier this offer came from (e.g., "duffel")
	Provider string `json:"provider"`

	// Price contains the total price for all passengers
	Price PriceInfo `json:"price"`

	// Segments lists every flight segment across all slices of the
	// journey, ordered by slice and then by departure time
	Segments []FlightSegment `json:"segments"`

	// Duration is the total duration of the first slice
	Duration DurationInfo `json:"duration"`

	// CabinClass is the booked cabin class
	CabinClass CabinClass `json:"cabinClass"`

	// Refundable reports whether the fare allows refunds before departure
	Refundable bool `json:"refundable"`

	// Conditions carries fare flexibility details and raw supplier metadata
	Conditions Conditions `json:"conditions"`

	// Score is the ranking score computed for the current search.
	// It is recomputed on every search and never persisted.
	Score float64 `json:"score,omitempty"`
}

// FlightSegment represents one leg of a journey operated by a single flight.
type FlightSegment struct {
	// Origin is the IATA code of the departure airport (e.g., "MEX")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CUN")
	Destination string `json:"destination"`

	// DepartureTime is the scheduled departure in the airport's local timezone
	DepartureTime time.Time `json:"departureTime"`

	// ArrivalTime is the scheduled arrival in the airport's local timezone
	ArrivalTime time.Time `json:"arrivalTime"`

	// Carrier is the marketing carrier for this segment
	Carrier AirlineInfo `json:"carrier"`

	// FlightNumber is the carrier's flight number without the airline prefix (e.g., "512")
	FlightNumber string `json:"flightNumber"`

	// Duration is the segment duration in ISO 8601 form (e.g., "PT2H15M")
	Duration string `json:"duration"`

	// SliceIndex identifies which requested slice this segment belongs to.
	// 0 is the outbound slice; a round trip's return slice is 1.
	SliceIndex int `json:"sliceIndex"`
}

// AirlineInfo identifies an airline.
type AirlineInfo struct {
	// Code is the IATA airline designator (e.g., "AM" for Aeromexico)
	Code string `json:"code"`

	// Name is the full airline name, when the supplier provides one
	Name string `json:"name,omitempty"`
}

// PriceInfo contains a monetary amount with its currency.
type PriceInfo struct {
	// Amount is the numeric value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "USD", "MXN")
	Currency string `json:"currency"`
}

// DurationInfo contains flight duration information.
type DurationInfo struct {
	// TotalMinutes is the duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string `json:"formatted"`
}

// Conditions carries fare flexibility details attached to an offer.
// Suppliers that expose no flexibility information produce the zero value,
// which reads as a non-changeable fare with no known penalties.
type Conditions struct {
	// Changeable reports whether the fare allows changes before departure
	Changeable bool `json:"changeable"`

	// ChangePenalty is the fee charged for a change, when known
	ChangePenalty *PriceInfo `json:"changePenalty,omitempty"`

	// RefundPenalty is the fee charged for a refund, when known
	RefundPenalty *PriceInfo `json:"refundPenalty,omitempty"`

	// PassengerIDs are the supplier's raw passenger identifiers, kept so
	// downstream booking flows can reference the original travelers
	PassengerIDs []string `json:"passengerIds,omitempty"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// FirstSegment returns the first segment of the journey, or nil for an
// offer with no segments.
func (f *Flight) FirstSegment() *FlightSegment {
	if len(f.Segments) == 0 {
		return nil
	}
	return &f.Segments[0]
}

// Stops returns the number of intermediate stops on the first slice.
// A nonstop outbound has 0 stops regardless of how many slices follow.
func (f *Flight) Stops() int {
	count := 0
	for i := range f.Segments {
		if f.Segments[i].SliceIndex == 0 {
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return count - 1
}

// Fingerprint returns the identity key used to detect the same physical
// flight sold by multiple suppliers: first segment carrier code, flight
// number, and departure timestamp. Offers without segments have no
// fingerprint and are never considered duplicates of each other.
func (f *Flight) Fingerprint() string {
	first := f.FirstSegment()
	if first == nil {
		return ""
	}
	return fmt.Sprintf("%s|%s|%s",
		first.Carrier.Code,
		first.FlightNumber,
		first.DepartureTime.UTC().Format(time.RFC3339),
	)
}
