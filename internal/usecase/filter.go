package usecase

import (
	"strings"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
)

// DefaultMaxResults caps the final ranked list.
const DefaultMaxResults = 30

// FilterPolicy holds the preference filter configuration.
type FilterPolicy struct {
	// PreferFlexible enables the flexibility tiers: prefer fares that
	// are changeable and refundable, fall back to changeable-only, fall
	// back to everything.
	PreferFlexible bool

	// MaxResults truncates the final list after filtering and sorting.
	MaxResults int
}

// DefaultFilterPolicy returns the default policy.
func DefaultFilterPolicy() FilterPolicy {
	return FilterPolicy{
		PreferFlexible: true,
		MaxResults:     DefaultMaxResults,
	}
}

// ApplyPreferences runs the preference filter chain over an
// already-scored, already-sorted flight list. Every stage guards against
// total elimination: a filter that would empty a non-empty set is
// skipped and the pre-filter set is kept. The relative order of
// surviving flights is preserved, so the final truncation keeps the
// highest-ranked entries.
//
// Stage order is fixed: time of day, then airline, then flexibility.
// Later stages narrow the already-narrowed set from earlier ones.
func ApplyPreferences(flights []domain.Flight, req domain.SearchRequest, policy FilterPolicy, log *logger.Logger) []domain.Flight {
	if log == nil {
		log = logger.Nop()
	}

	result := flights

	if req.TimeOfDay != "" && req.TimeOfDay != domain.TimeOfDayAny {
		result = keepOrFallback(filterByTimeOfDay(result, req.TimeOfDay), result, "time_of_day", log)
	}

	if req.PreferredAirline != "" {
		result = keepOrFallback(filterByAirline(result, req.PreferredAirline), result, "airline", log)
	}

	if policy.PreferFlexible {
		result = filterByFlexibility(result, log)
	}

	if policy.MaxResults > 0 && len(result) > policy.MaxResults {
		result = result[:policy.MaxResults]
	}

	return result
}

// keepOrFallback returns the filtered set unless the filter eliminated
// everything, in which case the unfiltered set survives.
func keepOrFallback(filtered, unfiltered []domain.Flight, stage string, log *logger.Logger) []domain.Flight {
	if len(filtered) == 0 && len(unfiltered) > 0 {
		log.Info().
			Str("filter", stage).
			Int("flights", len(unfiltered)).
			Msg("filter matched nothing, keeping unfiltered set")
		return unfiltered
	}
	return filtered
}

// filterByTimeOfDay keeps flights whose first-segment departure hour
// falls in the requested window.
func filterByTimeOfDay(flights []domain.Flight, window domain.TimeOfDay) []domain.Flight {
	return filterFlights(flights, func(f domain.Flight) bool {
		first := f.FirstSegment()
		return first != nil && window.ContainsTime(first.DepartureTime)
	})
}

// filterByAirline keeps flights whose first-segment carrier matches the
// requested airline, case-insensitive.
func filterByAirline(flights []domain.Flight, airline string) []domain.Flight {
	return filterFlights(flights, func(f domain.Flight) bool {
		first := f.FirstSegment()
		return first != nil && strings.EqualFold(first.Carrier.Code, airline)
	})
}

// filterByFlexibility applies the fare flexibility tiers and logs which
// tier was used.
func filterByFlexibility(flights []domain.Flight, log *logger.Logger) []domain.Flight {
	if len(flights) == 0 {
		return flights
	}

	tier := "all"
	result := flights

	if both := filterFlights(flights, func(f domain.Flight) bool {
		return f.Conditions.Changeable && f.Refundable
	}); len(both) > 0 {
		tier, result = "changeable_refundable", both
	} else if changeable := filterFlights(flights, func(f domain.Flight) bool {
		return f.Conditions.Changeable
	}); len(changeable) > 0 {
		tier, result = "changeable", changeable
	}

	log.Info().
		Str("tier", tier).
		Int("flights", len(result)).
		Msg("flexibility tier applied")

	return result
}

// filterFlights returns the flights matching the predicate, preserving
// order, without mutating the input.
func filterFlights(flights []domain.Flight, keep func(domain.Flight) bool) []domain.Flight {
	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if keep(f) {
			result = append(result, f)
		}
	}
	return result
}
