package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// neutralFlight returns a flight that triggers no scoring rule beyond
// the nonstop bonus: mid-band price, mid-band duration, non-primary
// provider, not changeable.
func neutralFlight(price float64, durationMin int) domain.Flight {
	return createTestFlight("n", "kiwi", price, durationMin, 0)
}

// neutralBaseline is base 100 plus the nonstop bonus carried by every
// neutralFlight.
const neutralBaseline = 150.0

func TestDefaultScoringConfig(t *testing.T) {
	cfg := DefaultScoringConfig()

	assert.Equal(t, 100.0, cfg.BaseScore)
	assert.Equal(t, 50.0, cfg.NonstopBonus)
	assert.Equal(t, 20.0, cfg.OneStopBonus)
	assert.Equal(t, 10.0, cfg.ExtraStopPenalty)
	assert.Equal(t, 50.0, cfg.PreferredAirlineBonus)
	assert.Equal(t, 20.0, cfg.CheapPriceBonus)
	assert.Equal(t, 10.0, cfg.MidPriceBonus)
	assert.Equal(t, 15.0, cfg.HighPricePenalty)
	assert.Equal(t, 200.0, cfg.CheapPriceBelow)
	assert.Equal(t, 350.0, cfg.MidPriceBelow)
	assert.Equal(t, 600.0, cfg.HighPriceAbove)
	assert.Equal(t, 15.0, cfg.ShortDurationBonus)
	assert.Equal(t, 5.0, cfg.MediumDurationBonus)
	assert.Equal(t, 10.0, cfg.LongDurationPenalty)
	assert.Equal(t, 5*time.Hour, cfg.ShortDurationBelow)
	assert.Equal(t, 10*time.Hour, cfg.MediumDurationBelow)
	assert.Equal(t, 15*time.Hour, cfg.LongDurationAbove)
	assert.Equal(t, 50.0, cfg.TimeOfDayMatchBonus)
	assert.Equal(t, 5.0, cfg.ProviderTrustBonus)
	assert.Equal(t, "duffel", cfg.PrimaryProvider)
	assert.Equal(t, 10.0, cfg.ChangeableBonus)
}

func TestScoreFlights_StopCount(t *testing.T) {
	tests := []struct {
		name  string
		stops int
		want  float64
	}{
		{name: "nonstop", stops: 0, want: 150},    // 100 + 50
		{name: "one stop", stops: 1, want: 120},   // 100 + 20
		{name: "two stops", stops: 2, want: 90},   // 100 - 10
		{name: "three stops", stops: 3, want: 80}, // 100 - 20
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights := []domain.Flight{createTestFlight("1", "kiwi", 400, 720, tt.stops)}
			scored := ScoreFlights(flights, testRequest(), DefaultScoringConfig())
			assert.Equal(t, tt.want, scored[0].Score)
		})
	}
}

func TestScoreFlights_PreferredAirline(t *testing.T) {
	req := testRequest()
	req.PreferredAirline = "AM"

	match := neutralFlight(400, 720) // carrier AM
	noMatch := neutralFlight(400, 720)
	noMatch.Segments[0].Carrier.Code = "IB"

	scored := ScoreFlights([]domain.Flight{match, noMatch}, req, DefaultScoringConfig())

	assert.Equal(t, neutralBaseline+50, scored[0].Score)
	assert.Equal(t, neutralBaseline, scored[1].Score)
}

func TestScoreFlights_PreferredAirlineCaseInsensitive(t *testing.T) {
	req := testRequest()
	req.PreferredAirline = "am"

	scored := ScoreFlights([]domain.Flight{neutralFlight(400, 720)}, req, DefaultScoringConfig())

	assert.Equal(t, neutralBaseline+50, scored[0].Score)
}

func TestScoreFlights_PriceBands(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{name: "cheap", price: 199.99, want: neutralBaseline + 20},
		{name: "cheap boundary is exclusive", price: 200, want: neutralBaseline + 10},
		{name: "mid band", price: 349.99, want: neutralBaseline + 10},
		{name: "mid boundary is exclusive", price: 350, want: neutralBaseline},
		{name: "no band", price: 500, want: neutralBaseline},
		{name: "high boundary is exclusive", price: 600, want: neutralBaseline},
		{name: "expensive", price: 600.01, want: neutralBaseline - 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := ScoreFlights([]domain.Flight{neutralFlight(tt.price, 720)}, testRequest(), DefaultScoringConfig())
			assert.Equal(t, tt.want, scored[0].Score)
		})
	}
}

func TestScoreFlights_DurationBands(t *testing.T) {
	tests := []struct {
		name        string
		durationMin int
		want        float64
	}{
		{name: "short", durationMin: 299, want: neutralBaseline + 15},
		{name: "short boundary is exclusive", durationMin: 300, want: neutralBaseline + 5},
		{name: "medium", durationMin: 599, want: neutralBaseline + 5},
		{name: "medium boundary is exclusive", durationMin: 600, want: neutralBaseline},
		{name: "no band", durationMin: 800, want: neutralBaseline},
		{name: "long boundary is exclusive", durationMin: 900, want: neutralBaseline},
		{name: "long", durationMin: 901, want: neutralBaseline - 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := ScoreFlights([]domain.Flight{neutralFlight(400, tt.durationMin)}, testRequest(), DefaultScoringConfig())
			assert.Equal(t, tt.want, scored[0].Score)
		})
	}
}

func TestScoreFlights_TimeOfDayMatch(t *testing.T) {
	// createTestFlight departs at 08:00 UTC.
	tests := []struct {
		name string
		tod  domain.TimeOfDay
		want float64
	}{
		{name: "matching window", tod: domain.TimeOfDayMorning, want: neutralBaseline + 50},
		{name: "non-matching window", tod: domain.TimeOfDayEvening, want: neutralBaseline},
		{name: "any window scores nothing", tod: domain.TimeOfDayAny, want: neutralBaseline},
		{name: "unset", tod: "", want: neutralBaseline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			req.TimeOfDay = tt.tod

			scored := ScoreFlights([]domain.Flight{neutralFlight(400, 720)}, req, DefaultScoringConfig())
			assert.Equal(t, tt.want, scored[0].Score)
		})
	}
}

func TestScoreFlights_ProviderTrust(t *testing.T) {
	primary := createTestFlight("1", "duffel", 400, 720, 0)
	other := createTestFlight("2", "kiwi", 400, 720, 0)

	scored := ScoreFlights([]domain.Flight{primary, other}, testRequest(), DefaultScoringConfig())

	assert.Equal(t, neutralBaseline+5, scored[0].Score)
	assert.Equal(t, neutralBaseline, scored[1].Score)
}

func TestScoreFlights_ChangeableBonus(t *testing.T) {
	changeable := neutralFlight(400, 720)
	changeable.Conditions.Changeable = true

	scored := ScoreFlights([]domain.Flight{changeable, neutralFlight(400, 720)}, testRequest(), DefaultScoringConfig())

	assert.Equal(t, neutralBaseline+10, scored[0].Score)
	assert.Equal(t, neutralBaseline, scored[1].Score)
}

// TestScoreFlights_RulesAreAdditive stacks every bonus on one flight.
func TestScoreFlights_RulesAreAdditive(t *testing.T) {
	f := createTestFlight("1", "duffel", 150, 180, 0)
	f.Conditions.Changeable = true

	req := testRequest()
	req.PreferredAirline = "AM"
	req.TimeOfDay = domain.TimeOfDayMorning

	scored := ScoreFlights([]domain.Flight{f}, req, DefaultScoringConfig())

	// 100 base + 50 nonstop + 50 airline + 20 cheap + 15 short
	// + 50 time of day + 5 trust + 10 changeable
	assert.Equal(t, 300.0, scored[0].Score)
}

// TestScoreFlights_AirlineBonusOutweighsPrice checks the sizing of the
// airline bonus: a preferred-airline nonstop beats a cheaper one-stop
// from another carrier.
func TestScoreFlights_AirlineBonusOutweighsPrice(t *testing.T) {
	ibNonstop := createTestFlight("1", "kiwi", 450, 720, 0)
	ibNonstop.Segments[0].Carrier.Code = "IB"

	cheaperOneStop := createTestFlight("2", "kiwi", 300, 720, 1)

	req := testRequest()
	req.PreferredAirline = "IB"

	flights := ScoreFlights([]domain.Flight{cheaperOneStop, ibNonstop}, req, DefaultScoringConfig())
	sorted := SortByScore(flights)

	require.Equal(t, "IB", sorted[0].Segments[0].Carrier.Code)
	assert.Greater(t, sorted[0].Score, sorted[1].Score)
}

func TestScoreFlights_WritesScoresInPlace(t *testing.T) {
	flights := []domain.Flight{neutralFlight(400, 720)}

	returned := ScoreFlights(flights, testRequest(), DefaultScoringConfig())

	assert.Equal(t, neutralBaseline, flights[0].Score)
	assert.Same(t, &flights[0], &returned[0])
}

func TestScoreFlights_CustomWeights(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.NonstopBonus = 80
	cfg.PrimaryProvider = "kiwi"

	scored := ScoreFlights([]domain.Flight{neutralFlight(400, 720)}, testRequest(), cfg)

	assert.Equal(t, 185.0, scored[0].Score) // 100 + 80 + 5
}

func TestSortByScore_Descending(t *testing.T) {
	a := neutralFlight(400, 720)
	a.Score = 120
	b := neutralFlight(400, 720)
	b.Score = 180
	c := neutralFlight(400, 720)
	c.Score = 150

	sorted := SortByScore([]domain.Flight{a, b, c})

	assert.Equal(t, []float64{180, 150, 120}, []float64{sorted[0].Score, sorted[1].Score, sorted[2].Score})
}

func TestSortByScore_TieBrokenByPrice(t *testing.T) {
	expensive := neutralFlight(500, 720)
	expensive.Score = 150
	cheap := neutralFlight(300, 720)
	cheap.Score = 150

	sorted := SortByScore([]domain.Flight{expensive, cheap})

	assert.Equal(t, 300.0, sorted[0].Price.Amount)
	assert.Equal(t, 500.0, sorted[1].Price.Amount)
}

func TestSortByScore_TieBrokenBySegmentCount(t *testing.T) {
	twoSegments := createTestFlight("1", "kiwi", 400, 720, 1)
	twoSegments.Score = 150
	oneSegment := createTestFlight("2", "kiwi", 400, 720, 0)
	oneSegment.Score = 150

	sorted := SortByScore([]domain.Flight{twoSegments, oneSegment})

	assert.Len(t, sorted[0].Segments, 1)
	assert.Len(t, sorted[1].Segments, 2)
}

func TestSortByScore_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, SortByScore(nil))

	single := []domain.Flight{neutralFlight(400, 720)}
	assert.Len(t, SortByScore(single), 1)
}
