package kiwi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// normalize converts the search response to domain flights.
// Itineraries that cannot be normalized are skipped so one malformed
// itinerary never discards the rest of the response.
func (a *Adapter) normalize(resp *KiwiResponse, req domain.SearchRequest) []domain.Flight {
	currency := resp.Currency
	if currency == "" {
		currency = a.cfg.Currency
	}

	flights := make([]domain.Flight, 0, len(resp.Data))
	for _, itinerary := range resp.Data {
		flight, err := normalizeItinerary(itinerary, currency, req)
		if err != nil {
			a.log.Debug().
				Str("itinerary_id", itinerary.ID).
				Err(err).
				Msg("skipping itinerary")
			continue
		}
		flights = append(flights, flight)
	}
	return flights
}

// normalizeItinerary converts a single itinerary to a domain Flight.
// The booking token is the native identifier a booking call needs;
// Kiwi fares carry no flexibility structure, so fares default to not
// changeable and not refundable.
func normalizeItinerary(itinerary KiwiItinerary, currency string, req domain.SearchRequest) (domain.Flight, error) {
	nativeID := itinerary.BookingToken
	if nativeID == "" {
		nativeID = itinerary.ID
	}

	offerID, err := domain.EncodeOfferID(ProviderName, nativeID, "")
	if err != nil {
		return domain.Flight{}, err
	}

	segments := make([]domain.FlightSegment, 0, len(itinerary.Route))
	for _, route := range itinerary.Route {
		departure, err := parseUTCTime(route.UTCDeparture, route.FlyFrom)
		if err != nil {
			return domain.Flight{}, fmt.Errorf("parse utc_departure: %w", err)
		}
		arrival, err := parseUTCTime(route.UTCArrival, route.FlyTo)
		if err != nil {
			return domain.Flight{}, fmt.Errorf("parse utc_arrival: %w", err)
		}

		segments = append(segments, domain.FlightSegment{
			Origin:        route.FlyFrom,
			Destination:   route.FlyTo,
			DepartureTime: departure,
			ArrivalTime:   arrival,
			Carrier:       domain.AirlineInfo{Code: route.Airline},
			FlightNumber:  strconv.Itoa(route.FlightNo),
			Duration:      domain.FormatISODuration(arrival.Sub(departure)),
			SliceIndex:    route.Return,
		})
	}
	if len(segments) == 0 {
		return domain.Flight{}, errors.New("itinerary has no route")
	}

	return domain.Flight{
		OfferID:    offerID,
		Provider:   ProviderName,
		Price:      domain.PriceInfo{Amount: itinerary.Price, Currency: currency},
		Segments:   segments,
		Duration:   domain.NewDurationInfo(itinerary.Duration.Departure / 60),
		CabinClass: req.CabinClass,
		Refundable: false,
		Conditions: domain.Conditions{},
	}, nil
}

// parseUTCTime parses a UTC timestamp and re-expresses it in the
// airport's timezone, so downstream consumers see local wall-clock
// departure hours.
func parseUTCTime(value, iataCode string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
	}
	return t.In(timeutil.AirportLocation(iataCode)), nil
}
