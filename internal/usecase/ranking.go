// Package usecase contains the aggregation pipeline: concurrent provider
// fan-out, deduplication, scoring, and the preference filter chain.
package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// Default scoring rule values. Every flight starts at the base score and
// each rule below adds or subtracts independently. The magnitudes encode
// the preference order: nonstop and an exact airline or time-of-day
// match dominate, price and duration bands nudge, trust and flexibility
// break near-ties.
const (
	defaultBaseScore = 100

	// Stop count: nonstop is the strongest single preference signal.
	defaultNonstopBonus     = 50
	defaultOneStopBonus     = 20
	defaultExtraStopPenalty = 10 // subtracted per stop beyond one

	// First-segment carrier matches the requested airline.
	defaultPreferredAirlineBonus = 50

	// Price bands. Currency-naive, tunable.
	defaultCheapPriceBonus  = 20
	defaultMidPriceBonus    = 10
	defaultHighPricePenalty = 15 // subtracted
	defaultCheapPriceBelow  = 200
	defaultMidPriceBelow    = 350
	defaultHighPriceAbove   = 600

	// First-slice duration bands.
	defaultShortDurationBonus  = 15
	defaultMediumDurationBonus = 5
	defaultLongDurationPenalty = 10 // subtracted
	defaultShortDurationBelow  = 5 * time.Hour
	defaultMediumDurationBelow = 10 * time.Hour
	defaultLongDurationAbove   = 15 * time.Hour

	// First-segment departure hour falls in the requested window.
	defaultTimeOfDayMatchBonus = 50

	// The primary supplier has the lowest observed failure and
	// cancellation rates.
	defaultProviderTrustBonus = 5

	defaultChangeableBonus = 10
)

// ScoringConfig holds the ranking rule weights and band boundaries.
// Every value is independently tunable; the rules stay additive.
type ScoringConfig struct {
	BaseScore float64

	NonstopBonus     float64
	OneStopBonus     float64
	ExtraStopPenalty float64

	PreferredAirlineBonus float64

	CheapPriceBonus  float64
	MidPriceBonus    float64
	HighPricePenalty float64
	CheapPriceBelow  float64
	MidPriceBelow    float64
	HighPriceAbove   float64

	ShortDurationBonus  float64
	MediumDurationBonus float64
	LongDurationPenalty float64
	ShortDurationBelow  time.Duration
	MediumDurationBelow time.Duration
	LongDurationAbove   time.Duration

	TimeOfDayMatchBonus float64

	ProviderTrustBonus float64
	// PrimaryProvider names the supplier receiving the trust bonus.
	PrimaryProvider string

	ChangeableBonus float64
}

// DefaultScoringConfig returns the default rule values.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:             defaultBaseScore,
		NonstopBonus:          defaultNonstopBonus,
		OneStopBonus:          defaultOneStopBonus,
		ExtraStopPenalty:      defaultExtraStopPenalty,
		PreferredAirlineBonus: defaultPreferredAirlineBonus,
		CheapPriceBonus:       defaultCheapPriceBonus,
		MidPriceBonus:         defaultMidPriceBonus,
		HighPricePenalty:      defaultHighPricePenalty,
		CheapPriceBelow:       defaultCheapPriceBelow,
		MidPriceBelow:         defaultMidPriceBelow,
		HighPriceAbove:        defaultHighPriceAbove,
		ShortDurationBonus:    defaultShortDurationBonus,
		MediumDurationBonus:   defaultMediumDurationBonus,
		LongDurationPenalty:   defaultLongDurationPenalty,
		ShortDurationBelow:    defaultShortDurationBelow,
		MediumDurationBelow:   defaultMediumDurationBelow,
		LongDurationAbove:     defaultLongDurationAbove,
		TimeOfDayMatchBonus:   defaultTimeOfDayMatchBonus,
		ProviderTrustBonus:    defaultProviderTrustBonus,
		PrimaryProvider:       "duffel",
		ChangeableBonus:       defaultChangeableBonus,
	}
}

// ScoreFlights computes the desirability score of every flight against
// the request. Scores are written in place and the same slice is
// returned; they are never persisted and are recomputed on every search.
func ScoreFlights(flights []domain.Flight, req domain.SearchRequest, cfg ScoringConfig) []domain.Flight {
	for i := range flights {
		flights[i].Score = scoreFlight(&flights[i], req, cfg)
	}
	return flights
}

// scoreFlight applies the additive scoring rules to a single flight.
func scoreFlight(f *domain.Flight, req domain.SearchRequest, cfg ScoringConfig) float64 {
	score := cfg.BaseScore

	switch stops := f.Stops(); {
	case stops == 0:
		score += cfg.NonstopBonus
	case stops == 1:
		score += cfg.OneStopBonus
	default:
		score -= float64(stops-1) * cfg.ExtraStopPenalty
	}

	first := f.FirstSegment()

	if req.PreferredAirline != "" && first != nil && strings.EqualFold(first.Carrier.Code, req.PreferredAirline) {
		score += cfg.PreferredAirlineBonus
	}

	switch {
	case f.Price.Amount < cfg.CheapPriceBelow:
		score += cfg.CheapPriceBonus
	case f.Price.Amount < cfg.MidPriceBelow:
		score += cfg.MidPriceBonus
	case f.Price.Amount > cfg.HighPriceAbove:
		score -= cfg.HighPricePenalty
	}

	if f.Duration.TotalMinutes > 0 {
		duration := time.Duration(f.Duration.TotalMinutes) * time.Minute
		switch {
		case duration < cfg.ShortDurationBelow:
			score += cfg.ShortDurationBonus
		case duration < cfg.MediumDurationBelow:
			score += cfg.MediumDurationBonus
		case duration > cfg.LongDurationAbove:
			score -= cfg.LongDurationPenalty
		}
	}

	if req.TimeOfDay != "" && req.TimeOfDay != domain.TimeOfDayAny && first != nil &&
		req.TimeOfDay.ContainsTime(first.DepartureTime) {
		score += cfg.TimeOfDayMatchBonus
	}

	if cfg.PrimaryProvider != "" && f.Provider == cfg.PrimaryProvider {
		score += cfg.ProviderTrustBonus
	}

	if f.Conditions.Changeable {
		score += cfg.ChangeableBonus
	}

	return score
}

// SortByScore orders flights by score descending, breaking ties by
// ascending price and then by ascending segment count. The slice is
// sorted in place and returned.
func SortByScore(flights []domain.Flight) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	sort.SliceStable(flights, func(i, j int) bool {
		if flights[i].Score != flights[j].Score {
			return flights[i].Score > flights[j].Score
		}
		if flights[i].Price.Amount != flights[j].Price.Amount {
			return flights[i].Price.Amount < flights[j].Price.Amount
		}
		return len(flights[i].Segments) < len(flights[j].Segments)
	})

	return flights
}
