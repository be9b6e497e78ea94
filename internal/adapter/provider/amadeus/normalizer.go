package amadeus

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// normalize converts the offers response to domain flights. Offers
// that cannot be normalized are skipped so one malformed offer never
// discards the rest of the response.
func (a *Adapter) normalize(resp *AmadeusResponse, req domain.SearchRequest) []domain.Flight {
	var carrierNames map[string]string
	if resp.Dictionaries != nil {
		carrierNames = resp.Dictionaries.Carriers
	}

	flights := make([]domain.Flight, 0, len(resp.Data))
	for _, offer := range resp.Data {
		flight, err := normalizeOffer(offer, carrierNames, req)
		if err != nil {
			a.log.Debug().
				Str("offer_id", offer.ID).
				Err(err).
				Msg("skipping offer")
			continue
		}
		flights = append(flights, flight)
	}
	return flights
}

// normalizeOffer converts a single Amadeus offer to a domain Flight.
// Amadeus offers carry no flexibility structure, so fares default to
// not changeable and not refundable.
func normalizeOffer(offer AmadeusOffer, carrierNames map[string]string, req domain.SearchRequest) (domain.Flight, error) {
	amount, err := parseAmount(offer.Price)
	if err != nil {
		return domain.Flight{}, err
	}

	offerID, err := domain.EncodeOfferID(ProviderName, offer.ID, "")
	if err != nil {
		return domain.Flight{}, err
	}

	segments := make([]domain.FlightSegment, 0, len(offer.Itineraries))
	for sliceIndex, itinerary := range offer.Itineraries {
		for _, seg := range itinerary.Segments {
			departure, err := parseLocalTime(seg.Departure.At, seg.Departure.IATACode)
			if err != nil {
				return domain.Flight{}, fmt.Errorf("parse departure time: %w", err)
			}
			arrival, err := parseLocalTime(seg.Arrival.At, seg.Arrival.IATACode)
			if err != nil {
				return domain.Flight{}, fmt.Errorf("parse arrival time: %w", err)
			}

			segments = append(segments, domain.FlightSegment{
				Origin:        seg.Departure.IATACode,
				Destination:   seg.Arrival.IATACode,
				DepartureTime: departure,
				ArrivalTime:   arrival,
				Carrier: domain.AirlineInfo{
					Code: seg.CarrierCode,
					Name: carrierNames[seg.CarrierCode],
				},
				FlightNumber: seg.Number,
				Duration:     seg.Duration,
				SliceIndex:   sliceIndex,
			})
		}
	}
	if len(segments) == 0 {
		return domain.Flight{}, errors.New("offer has no segments")
	}

	return domain.Flight{
		OfferID:    offerID,
		Provider:   ProviderName,
		Price:      domain.PriceInfo{Amount: amount, Currency: offer.Price.Currency},
		Segments:   segments,
		Duration:   firstItineraryDuration(offer.Itineraries),
		CabinClass: req.CabinClass,
		Refundable: false,
		Conditions: domain.Conditions{},
	}, nil
}

// parseAmount reads the offer total, preferring grandTotal which
// includes fees.
func parseAmount(price AmadeusPrice) (float64, error) {
	raw := price.GrandTotal
	if raw == "" {
		raw = price.Total
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return amount, nil
}

// firstItineraryDuration reads the first itinerary's ISO 8601
// duration.
func firstItineraryDuration(itineraries []AmadeusItinerary) domain.DurationInfo {
	if len(itineraries) == 0 {
		return domain.NewDurationInfo(0)
	}
	d, err := domain.ParseISODuration(itineraries[0].Duration)
	if err != nil {
		return domain.NewDurationInfo(0)
	}
	return domain.NewDurationInfo(int(d.Minutes()))
}

// parseLocalTime interprets a zone-less local timestamp in the
// airport's timezone.
func parseLocalTime(value, iataCode string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, timeutil.AirportLocation(iataCode)); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
}
