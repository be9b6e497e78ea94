// Package timeutil provides time-related utilities for testability and convenience.
package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores cached timezone locations for performance.
var locationCache sync.Map

// airportTimezones maps IATA airport codes to IANA timezone names for the
// airports the search serves. Suppliers like Amadeus and Duffel return
// local timestamps without an offset; this table lets normalizers attach
// the departure airport's timezone.
var airportTimezones = map[string]string{
	// Mexico
	"MEX": "America/Mexico_City",
	"NLU": "America/Mexico_City",
	"GDL": "America/Mexico_City",
	"MTY": "America/Monterrey",
	"CUN": "America/Cancun",
	"CZM": "America/Cancun",
	"MID": "America/Merida",
	"OAX": "America/Mexico_City",
	"PVR": "America/Bahia_Banderas",
	"SJD": "America/Mazatlan",
	"TIJ": "America/Tijuana",

	// United States and Canada
	"JFK": "America/New_York",
	"EWR": "America/New_York",
	"MIA": "America/New_York",
	"ORD": "America/Chicago",
	"DFW": "America/Chicago",
	"IAH": "America/Chicago",
	"LAX": "America/Los_Angeles",
	"SFO": "America/Los_Angeles",
	"YYZ": "America/Toronto",

	// Central America and the Caribbean
	"HAV": "America/Havana",
	"SJU": "America/Puerto_Rico",
	"PTY": "America/Panama",
	"SAL": "America/El_Salvador",
	"GUA": "America/Guatemala",
	"SJO": "America/Costa_Rica",

	// South America
	"BOG": "America/Bogota",
	"MDE": "America/Bogota",
	"LIM": "America/Lima",
	"SCL": "America/Santiago",
	"EZE": "America/Argentina/Buenos_Aires",
	"GRU": "America/Sao_Paulo",

	// Europe
	"MAD": "Europe/Madrid",
	"BCN": "Europe/Madrid",
	"LHR": "Europe/London",
	"CDG": "Europe/Paris",
	"FRA": "Europe/Berlin",
	"AMS": "Europe/Amsterdam",
	"FCO": "Europe/Rome",
	"LIS": "Europe/Lisbon",
}

// GetLocation returns a cached timezone location.
// It caches the result for subsequent calls with the same name.
func GetLocation(name string) (*time.Location, error) {
	// Check cache first
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	// Load location
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	// Store in cache
	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
// Use this for known-good timezone names (e.g., constants).
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// AirportLocation returns the timezone location of an IATA airport code.
// Unknown airports fall back to UTC, which keeps timestamps usable even
// when the table has no entry for a supplier's airport.
func AirportLocation(iataCode string) *time.Location {
	name, ok := airportTimezones[iataCode]
	if !ok {
		return time.UTC
	}
	loc, err := GetLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// KnownAirport reports whether the airport has a timezone table entry.
func KnownAirport(iataCode string) bool {
	_, ok := airportTimezones[iataCode]
	return ok
}
