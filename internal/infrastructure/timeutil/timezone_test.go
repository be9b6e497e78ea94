package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation_UTC(t *testing.T) {
	loc, err := GetLocation("UTC")

	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestGetLocation_MexicoCity(t *testing.T) {
	loc, err := GetLocation("America/Mexico_City")

	require.NoError(t, err)
	assert.Equal(t, "America/Mexico_City", loc.String())
}

func TestGetLocation_Invalid(t *testing.T) {
	_, err := GetLocation("Invalid/Timezone")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid/Timezone")
}

func TestGetLocation_Caching(t *testing.T) {
	loc1, err := GetLocation("Europe/Madrid")
	require.NoError(t, err)

	loc2, err := GetLocation("Europe/Madrid")
	require.NoError(t, err)

	// Cached lookups return the same instance
	assert.Same(t, loc1, loc2)
}

func TestGetLocation_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loc, err := GetLocation("America/Cancun")
			assert.NoError(t, err)
			assert.NotNil(t, loc)
		}()
	}
	wg.Wait()
}

func TestMustGetLocation_Valid(t *testing.T) {
	loc := MustGetLocation("America/Monterrey")
	assert.Equal(t, "America/Monterrey", loc.String())
}

func TestMustGetLocation_Invalid(t *testing.T) {
	assert.Panics(t, func() {
		MustGetLocation("Invalid/Timezone")
	})
}

func TestAirportLocation(t *testing.T) {
	tests := []struct {
		airport  string
		wantZone string
	}{
		{airport: "MEX", wantZone: "America/Mexico_City"},
		{airport: "CUN", wantZone: "America/Cancun"},
		{airport: "TIJ", wantZone: "America/Tijuana"},
		{airport: "MAD", wantZone: "Europe/Madrid"},
		{airport: "BCN", wantZone: "Europe/Madrid"},
		{airport: "JFK", wantZone: "America/New_York"},
		{airport: "GRU", wantZone: "America/Sao_Paulo"},
	}

	for _, tt := range tests {
		t.Run(tt.airport, func(t *testing.T) {
			loc := AirportLocation(tt.airport)
			assert.Equal(t, tt.wantZone, loc.String())
		})
	}
}

func TestAirportLocation_UnknownFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AirportLocation("XXX"))
	assert.Equal(t, time.UTC, AirportLocation(""))
}

func TestAirportLocation_LocalizesSupplierTimestamps(t *testing.T) {
	// A supplier timestamp without an offset, parsed in the departure
	// airport's timezone, keeps its local wall-clock hour.
	raw := "2026-09-01T08:15:00"
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", raw, AirportLocation("MEX"))
	require.NoError(t, err)

	assert.Equal(t, 8, parsed.Hour())
	// Mexico City no longer observes DST; it is UTC-6 year round.
	assert.Equal(t, 14, parsed.UTC().Hour())
}

func TestKnownAirport(t *testing.T) {
	assert.True(t, KnownAirport("MEX"))
	assert.True(t, KnownAirport("HAV"))
	assert.False(t, KnownAirport("ZZZ"))
	assert.False(t, KnownAirport("mex"))
}
