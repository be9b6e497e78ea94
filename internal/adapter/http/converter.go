// Package http provides the HTTP transport for the flight search API.
package http

import (
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// ToSearchRequest converts a validated SearchFlightsRequest into the
// domain request. The caller must have run Validate first so codes are
// already canonicalized.
func ToSearchRequest(req *SearchFlightsRequest) domain.SearchRequest {
	var sr domain.SearchRequest

	switch {
	case len(req.Slices) > 0:
		slices := make([]domain.SearchSlice, len(req.Slices))
		for i, sl := range req.Slices {
			slices[i] = domain.SearchSlice{
				Origin:        sl.Origin,
				Destination:   sl.Destination,
				DepartureDate: sl.DepartureDate,
			}
		}
		sr = domain.SearchRequest{Slices: slices}
	case req.ReturnDate != "":
		sr = domain.NewRoundTripSearch(req.Origin, req.Destination, req.DepartureDate, req.ReturnDate)
	default:
		sr = domain.NewOneWaySearch(req.Origin, req.Destination, req.DepartureDate)
	}

	sr.Passengers = req.Passengers
	sr.CabinClass = domain.CabinClass(req.CabinClass)
	sr.PreferredAirline = req.PreferredAirline
	sr.TimeOfDay = domain.TimeOfDay(req.TimeOfDay)
	sr.SetDefaults()

	return sr
}
