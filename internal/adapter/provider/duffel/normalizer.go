package duffel

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// errOfferExpiring marks offers dropped because their remaining
// validity is below the configured minimum.
var errOfferExpiring = errors.New("offer expires too soon")

// normalize converts the offer request response to domain flights.
// Offers that cannot be normalized are skipped so one malformed offer
// never discards the rest of the response.
func (a *Adapter) normalize(resp *DuffelResponse, req domain.SearchRequest) []domain.Flight {
	now := a.clock.Now()

	flights := make([]domain.Flight, 0, len(resp.Data.Offers))
	for _, offer := range resp.Data.Offers {
		flight, err := a.normalizeOffer(offer, resp.Data.Passengers, req, now)
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

// normalizeOffer converts a single Duffel offer to a domain Flight.
func (a *Adapter) normalizeOffer(offer DuffelOffer, requestPassengers []DuffelPassenger, req domain.SearchRequest, now time.Time) (domain.Flight, error) {
	if offer.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, offer.ExpiresAt)
		if err != nil {
			return domain.Flight{}, fmt.Errorf("parse expires_at %q: %w", offer.ExpiresAt, err)
		}
		if expires.Sub(now) < a.cfg.MinOfferValidity {
			return domain.Flight{}, errOfferExpiring
		}
	}

	amount, err := strconv.ParseFloat(offer.TotalAmount, 64)
	if err != nil {
		return domain.Flight{}, fmt.Errorf("parse total_amount %q: %w", offer.TotalAmount, err)
	}

	passengerIDs := collectPassengerIDs(offer, requestPassengers)
	leadPassenger := ""
	if len(passengerIDs) > 0 {
		leadPassenger = passengerIDs[0]
	}

	offerID, err := domain.EncodeOfferID(ProviderName, offer.ID, leadPassenger)
	if err != nil {
		return domain.Flight{}, err
	}

	segments := make([]domain.FlightSegment, 0, len(offer.Slices))
	for sliceIndex, slice := range offer.Slices {
		for _, seg := range slice.Segments {
			departure, err := parseLocalTime(seg.DepartingAt, seg.Origin.IATACode)
			if err != nil {
				return domain.Flight{}, fmt.Errorf("parse departing_at: %w", err)
			}
			arrival, err := parseLocalTime(seg.ArrivingAt, seg.Destination.IATACode)
			if err != nil {
				return domain.Flight{}, fmt.Errorf("parse arriving_at: %w", err)
			}

			segments = append(segments, domain.FlightSegment{
				Origin:        seg.Origin.IATACode,
				Destination:   seg.Destination.IATACode,
				DepartureTime: departure,
				ArrivalTime:   arrival,
				Carrier: domain.AirlineInfo{
					Code: seg.MarketingCarrier.IATACode,
					Name: seg.MarketingCarrier.Name,
				},
				FlightNumber: seg.MarketingCarrierFlightNumber,
				Duration:     seg.Duration,
				SliceIndex:   sliceIndex,
			})
		}
	}
	if len(segments) == 0 {
		return domain.Flight{}, errors.New("offer has no segments")
	}

	conditions, refundable := normalizeConditions(offer)
	conditions.PassengerIDs = passengerIDs

	return domain.Flight{
		OfferID:    offerID,
		Provider:   ProviderName,
		Price:      domain.PriceInfo{Amount: amount, Currency: offer.TotalCurrency},
		Segments:   segments,
		Duration:   firstSliceDuration(segments),
		CabinClass: req.CabinClass,
		Refundable: refundable,
		Conditions: conditions,
	}, nil
}

// collectPassengerIDs returns the offer's passenger ids, falling back
// to the offer request's passengers when the offer carries none.
func collectPassengerIDs(offer DuffelOffer, requestPassengers []DuffelPassenger) []string {
	source := offer.Passengers
	if len(source) == 0 {
		source = requestPassengers
	}

	ids := make([]string, 0, len(source))
	for _, p := range source {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// normalizeConditions maps Duffel's flexibility rules to the domain
// representation.
func normalizeConditions(offer DuffelOffer) (domain.Conditions, bool) {
	conditions := domain.Conditions{}
	refundable := false

	if c := offer.Conditions.ChangeBeforeDeparture; c != nil {
		conditions.Changeable = c.Allowed
		conditions.ChangePenalty = penaltyPrice(c, offer.TotalCurrency)
	}
	if c := offer.Conditions.RefundBeforeDeparture; c != nil {
		refundable = c.Allowed
		conditions.RefundPenalty = penaltyPrice(c, offer.TotalCurrency)
	}
	return conditions, refundable
}

// penaltyPrice extracts an optional penalty amount from a condition.
func penaltyPrice(c *DuffelCondition, fallbackCurrency string) *domain.PriceInfo {
	if !c.Allowed || c.PenaltyAmount == nil {
		return nil
	}
	amount, err := strconv.ParseFloat(*c.PenaltyAmount, 64)
	if err != nil {
		return nil
	}
	currency := fallbackCurrency
	if c.PenaltyCurrency != nil && *c.PenaltyCurrency != "" {
		currency = *c.PenaltyCurrency
	}
	return &domain.PriceInfo{Amount: amount, Currency: currency}
}

// firstSliceDuration computes the elapsed time of the first slice from
// its first departure to its last arrival. Both timestamps carry their
// airport timezones, so the difference is the true elapsed duration.
func firstSliceDuration(segments []domain.FlightSegment) domain.DurationInfo {
	var first, last *domain.FlightSegment
	for i := range segments {
		if segments[i].SliceIndex != 0 {
			continue
		}
		if first == nil {
			first = &segments[i]
		}
		last = &segments[i]
	}
	if first == nil {
		return domain.NewDurationInfo(0)
	}

	elapsed := last.ArrivalTime.Sub(first.DepartureTime)
	if elapsed < 0 {
		return domain.NewDurationInfo(0)
	}
	return domain.NewDurationInfo(int(elapsed.Minutes()))
}

// parseLocalTime parses a Duffel timestamp. Times are zone-less local
// values, interpreted in the airport's timezone; timestamps that carry
// an explicit offset are accepted as-is.
func parseLocalTime(value, iataCode string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, timeutil.AirportLocation(iataCode)); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp %q", value)
}
