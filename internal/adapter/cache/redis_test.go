package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/usecase"
)

// Ensure FlightCache satisfies the engine's cache port at compile time.
var _ usecase.ResultCache = (*FlightCache)(nil)

// fakeRedis is an in-memory stand-in for the Redis client. It records
// the TTL of the last Set so expiry handling can be asserted.
type fakeRedis struct {
	entries map[string]fakeEntry
	getErr  error
	setErr  error
}

type fakeEntry struct {
	data []byte
	ttl  time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{entries: make(map[string]fakeEntry)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	entry, ok := f.entries[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(entry.data), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	data, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", fmt.Errorf("unexpected value type %T", value))
	}
	f.entries[key] = fakeEntry{data: data, ttl: expiration}
	return redis.NewStatusResult("OK", nil)
}

func sampleFlights() []domain.Flight {
	departure := time.Date(2026, 9, 1, 8, 15, 0, 0, time.UTC)

	return []domain.Flight{
		{
			OfferID:  "duffel::off_00009htYpSCXrwaB9DnUm0::pas_00009hj8USM7Ncg31cBCLL",
			Provider: "duffel",
			Price:    domain.PriceInfo{Amount: 214.30, Currency: "USD"},
			Segments: []domain.FlightSegment{
				{
					Origin:        "MEX",
					Destination:   "CUN",
					DepartureTime: departure,
					ArrivalTime:   departure.Add(130 * time.Minute),
					Carrier:       domain.AirlineInfo{Code: "AM", Name: "Aeromexico"},
					FlightNumber:  "512",
					Duration:      "PT2H10M",
					SliceIndex:    0,
				},
			},
			Duration:   domain.NewDurationInfo(130),
			CabinClass: domain.CabinEconomy,
			Refundable: true,
			Conditions: domain.Conditions{
				Changeable:    true,
				ChangePenalty: &domain.PriceInfo{Amount: 50, Currency: "USD"},
				PassengerIDs:  []string{"pas_00009hj8USM7Ncg31cBCLL"},
			},
		},
		{
			OfferID:  "kiwi::HhsgQjgGUFsgOAkVXlt",
			Provider: "kiwi",
			Price:    domain.PriceInfo{Amount: 150, Currency: "USD"},
			Segments: []domain.FlightSegment{
				{
					Origin:        "MEX",
					Destination:   "GDL",
					DepartureTime: departure.Add(-2 * time.Hour),
					ArrivalTime:   departure.Add(-45 * time.Minute),
					Carrier:       domain.AirlineInfo{Code: "Y4"},
					FlightNumber:  "811",
					Duration:      "PT1H15M",
					SliceIndex:    0,
				},
				{
					Origin:        "GDL",
					Destination:   "CUN",
					DepartureTime: departure.Add(time.Hour),
					ArrivalTime:   departure.Add(3 * time.Hour),
					Carrier:       domain.AirlineInfo{Code: "Y4"},
					FlightNumber:  "772",
					Duration:      "PT2H",
					SliceIndex:    0,
				},
			},
			Duration:   domain.NewDurationInfo(285),
			CabinClass: domain.CabinEconomy,
		},
	}
}

func TestFlightCache_RoundTrip(t *testing.T) {
	fake := newFakeRedis()
	c := NewFlightCache(fake)
	flights := sampleFlights()

	err := c.Set(context.Background(), "search:v1:MEX-CUN@2026-09-01:p1:economy", flights, time.Minute)
	require.NoError(t, err)

	got, found, err := c.Get(context.Background(), "search:v1:MEX-CUN@2026-09-01:p1:economy")
	require.NoError(t, err)
	require.True(t, found)

	if diff := cmp.Diff(flights, got); diff != "" {
		t.Errorf("cached flights mismatch (-want +got):\n%s", diff)
	}
}

func TestFlightCache_MissingKeyIsAMiss(t *testing.T) {
	c := NewFlightCache(newFakeRedis())

	got, found, err := c.Get(context.Background(), "search:v1:MEX-CUN@2026-09-01:p1:economy")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestFlightCache_CorruptEntryReadsAsError(t *testing.T) {
	fake := newFakeRedis()
	fake.entries["bad"] = fakeEntry{data: []byte("{not json")}
	c := NewFlightCache(fake)

	got, found, err := c.Get(context.Background(), "bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache decode")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestFlightCache_TTLPassedThrough(t *testing.T) {
	fake := newFakeRedis()
	c := NewFlightCache(fake)

	err := c.Set(context.Background(), "key", sampleFlights(), 90*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, fake.entries["key"].ttl)
}

func TestFlightCache_DefaultTTLWhenUnset(t *testing.T) {
	fake := newFakeRedis()
	c := NewFlightCache(fake)

	err := c.Set(context.Background(), "key", sampleFlights(), 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, fake.entries["key"].ttl)
}

func TestFlightCache_GetFailure(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("connection refused")
	c := NewFlightCache(fake)

	got, found, err := c.Get(context.Background(), "key")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache get")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestFlightCache_SetFailure(t *testing.T) {
	fake := newFakeRedis()
	fake.setErr = errors.New("connection refused")
	c := NewFlightCache(fake)

	err := c.Set(context.Background(), "key", sampleFlights(), time.Minute)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache set")
}

func TestFlightCache_EmptyListRoundTrips(t *testing.T) {
	fake := newFakeRedis()
	c := NewFlightCache(fake)

	require.NoError(t, c.Set(context.Background(), "key", []domain.Flight{}, time.Minute))

	got, found, err := c.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
}
