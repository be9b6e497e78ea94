package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchRequest defines the parameters for a flight search. The canonical
// shape is a list of slices: a one-way trip has one slice, a round trip two
// mirrored slices, and a multi-city itinerary one slice per leg.
//
// A SearchRequest is treated as immutable once validated; the search
// pipeline never mutates it.
type SearchRequest struct {
	// Slices are the requested journey legs, in travel order
	Slices []SearchSlice `json:"slices"`

	// Passengers is the number of passengers (default: 1)
	Passengers int `json:"passengers"`

	// CabinClass is the requested cabin class (default: economy)
	CabinClass CabinClass `json:"cabinClass,omitempty"`

	// PreferredAirline is an optional IATA airline designator (e.g., "AM").
	// Offers operated by this airline rank higher and are preferred by the
	// airline filter stage.
	PreferredAirline string `json:"preferredAirline,omitempty"`

	// TimeOfDay is an optional departure window for the first slice
	TimeOfDay TimeOfDay `json:"timeOfDay,omitempty"`
}

// SearchSlice is one leg of the requested journey.
type SearchSlice struct {
	// Origin is the IATA code of the departure airport (e.g., "MEX")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CUN")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`
}

// CabinClass is the requested travel cabin.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// validCabinClasses defines the allowed cabin classes.
var validCabinClasses = map[CabinClass]bool{
	CabinEconomy:        true,
	CabinPremiumEconomy: true,
	CabinBusiness:       true,
	CabinFirst:          true,
}

// IsValid reports whether the cabin class is one of the supported values.
func (c CabinClass) IsValid() bool {
	return validCabinClasses[c]
}

// maxSlices bounds multi-city itineraries, matching what the wired
// suppliers accept.
const maxSlices = 6

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// airlineCodeRegex matches IATA airline designators (2 characters, letters
// or digits, at least one letter).
var airlineCodeRegex = regexp.MustCompile(`^[A-Z0-9]{2}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewOneWaySearch builds a single-slice request.
func NewOneWaySearch(origin, destination, departureDate string) SearchRequest {
	return SearchRequest{
		Slices: []SearchSlice{
			{Origin: origin, Destination: destination, DepartureDate: departureDate},
		},
	}
}

// NewRoundTripSearch builds a two-slice request with mirrored airports.
func NewRoundTripSearch(origin, destination, departureDate, returnDate string) SearchRequest {
	return SearchRequest{
		Slices: []SearchSlice{
			{Origin: origin, Destination: destination, DepartureDate: departureDate},
			{Origin: destination, Destination: origin, DepartureDate: returnDate},
		},
	}
}

// Validate checks if the search request is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchRequest) Validate() error {
	// Validate slices
	if len(s.Slices) == 0 {
		return WrapInvalidRequest("at least one slice is required")
	}
	if len(s.Slices) > maxSlices {
		return WrapInvalidRequest("at most %d slices are supported, got %d", maxSlices, len(s.Slices))
	}

	var prevDate time.Time
	for i, slice := range s.Slices {
		if err := slice.validate(i); err != nil {
			return err
		}

		// Dates must not go backwards across slices
		date, _ := time.Parse("2006-01-02", slice.DepartureDate)
		if i > 0 && date.Before(prevDate) {
			return WrapInvalidRequest("slice %d departs on %s, before the previous slice", i, slice.DepartureDate)
		}
		prevDate = date
	}

	// Validate passengers
	if s.Passengers < 1 {
		return WrapInvalidRequest("passengers must be at least 1")
	}
	if s.Passengers > 9 {
		return WrapInvalidRequest("passengers cannot exceed 9")
	}

	// Validate cabin class (if provided)
	if s.CabinClass != "" && !s.CabinClass.IsValid() {
		return WrapInvalidRequest("cabinClass must be one of: economy, premium_economy, business, first; got %q", s.CabinClass)
	}

	// Validate preferred airline (if provided)
	if s.PreferredAirline != "" && !airlineCodeRegex.MatchString(s.PreferredAirline) {
		return WrapInvalidRequest("preferredAirline must be a 2-character IATA designator, got %q", s.PreferredAirline)
	}

	// Validate time of day (if provided)
	if s.TimeOfDay != "" && !s.TimeOfDay.IsValid() {
		return WrapInvalidRequest("timeOfDay must be one of: %s; got %q", strings.Join(timeOfDayNames(), ", "), s.TimeOfDay)
	}

	return nil
}

// validate checks a single slice, reporting errors with its position.
func (sl *SearchSlice) validate(index int) error {
	if sl.Origin == "" {
		return WrapInvalidRequest("slice %d: origin is required", index)
	}
	if !airportCodeRegex.MatchString(sl.Origin) {
		return WrapInvalidRequest("slice %d: origin must be a valid 3-letter IATA code, got %q", index, sl.Origin)
	}

	if sl.Destination == "" {
		return WrapInvalidRequest("slice %d: destination is required", index)
	}
	if !airportCodeRegex.MatchString(sl.Destination) {
		return WrapInvalidRequest("slice %d: destination must be a valid 3-letter IATA code, got %q", index, sl.Destination)
	}

	if sl.Origin == sl.Destination {
		return WrapInvalidRequest("slice %d: origin and destination must be different", index)
	}

	if sl.DepartureDate == "" {
		return WrapInvalidRequest("slice %d: departureDate is required", index)
	}
	if !dateRegex.MatchString(sl.DepartureDate) {
		return WrapInvalidRequest("slice %d: departureDate must be in YYYY-MM-DD format, got %q", index, sl.DepartureDate)
	}
	if _, err := time.Parse("2006-01-02", sl.DepartureDate); err != nil {
		return WrapInvalidRequest("slice %d: departureDate is not a valid date: %s", index, sl.DepartureDate)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (s *SearchRequest) SetDefaults() {
	if s.Passengers == 0 {
		s.Passengers = 1
	}
	if s.CabinClass == "" {
		s.CabinClass = CabinEconomy
	}
	if s.TimeOfDay == "" {
		s.TimeOfDay = TimeOfDayAny
	}
}

// IsRoundTrip reports whether the request is a two-slice trip with
// mirrored airports.
func (s *SearchRequest) IsRoundTrip() bool {
	if len(s.Slices) != 2 {
		return false
	}
	return s.Slices[0].Origin == s.Slices[1].Destination &&
		s.Slices[0].Destination == s.Slices[1].Origin
}

// IsMultiCity reports whether the request needs multi-city support from a
// supplier: more than one slice that is not a plain round trip.
func (s *SearchRequest) IsMultiCity() bool {
	return len(s.Slices) > 1 && !s.IsRoundTrip()
}

// CacheKey returns a deterministic key identifying this request for result
// caching. Two requests with the same parameters always produce the same key.
func (s *SearchRequest) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:v1")
	for _, sl := range s.Slices {
		fmt.Fprintf(&b, ":%s-%s@%s", sl.Origin, sl.Destination, sl.DepartureDate)
	}
	fmt.Fprintf(&b, ":p%d:%s", s.Passengers, s.CabinClass)
	if s.PreferredAirline != "" {
		fmt.Fprintf(&b, ":al=%s", s.PreferredAirline)
	}
	if s.TimeOfDay != "" && s.TimeOfDay != TimeOfDayAny {
		fmt.Fprintf(&b, ":tod=%s", s.TimeOfDay)
	}
	return b.String()
}
