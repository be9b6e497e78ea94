package kiwi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/retry"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// validResponse is a round trip with a nonstop outbound and a nonstop
// return. utc_departure 14:15Z is 08:15 local at MEX.
const validResponse = `{
	"currency": "USD",
	"data": [
		{
			"id": "itin_1",
			"booking_token": "BgsgEjgGUFsgOAkVWys",
			"flyFrom": "MEX",
			"flyTo": "CUN",
			"price": 198.5,
			"duration": {"departure": 7800, "return": 8100, "total": 15900},
			"route": [
				{
					"id": "route_1a",
					"flyFrom": "MEX",
					"flyTo": "CUN",
					"airline": "AM",
					"flight_no": 512,
					"local_departure": "2026-09-01T08:15:00.000Z",
					"utc_departure": "2026-09-01T14:15:00.000Z",
					"local_arrival": "2026-09-01T11:25:00.000Z",
					"utc_arrival": "2026-09-01T16:25:00.000Z",
					"return": 0
				},
				{
					"id": "route_1b",
					"flyFrom": "CUN",
					"flyTo": "MEX",
					"airline": "AM",
					"flight_no": 513,
					"local_departure": "2026-09-08T14:00:00.000Z",
					"utc_departure": "2026-09-08T19:00:00.000Z",
					"local_arrival": "2026-09-08T16:15:00.000Z",
					"utc_arrival": "2026-09-08T22:15:00.000Z",
					"return": 1
				}
			]
		},
		{
			"id": "itin_2",
			"booking_token": "HhsgQjgGUFsgOAkVXlt",
			"flyFrom": "MEX",
			"flyTo": "CUN",
			"price": 150.0,
			"duration": {"departure": 17100, "return": 0, "total": 17100},
			"route": [
				{
					"id": "route_2a",
					"flyFrom": "MEX",
					"flyTo": "GDL",
					"airline": "Y4",
					"flight_no": 811,
					"local_departure": "2026-09-01T06:00:00.000Z",
					"utc_departure": "2026-09-01T12:00:00.000Z",
					"local_arrival": "2026-09-01T07:20:00.000Z",
					"utc_arrival": "2026-09-01T13:20:00.000Z",
					"return": 0
				},
				{
					"id": "route_2b",
					"flyFrom": "GDL",
					"flyTo": "CUN",
					"airline": "Y4",
					"flight_no": 772,
					"local_departure": "2026-09-01T08:30:00.000Z",
					"utc_departure": "2026-09-01T14:30:00.000Z",
					"local_arrival": "2026-09-01T11:45:00.000Z",
					"utc_arrival": "2026-09-01T16:45:00.000Z",
					"return": 0
				}
			]
		}
	]
}`

func testExecutor(attempts int) *resilience.Executor {
	cfg := retry.Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, Multiplier: 2.0}
	return resilience.NewExecutor(nil, resilience.NewBreakerStore(resilience.DefaultBreakerConfig, nil), cfg, nil, nil)
}

func newTestAdapter(baseURL string) *Adapter {
	cfg := Config{BaseURL: baseURL, APIKey: "kiwi_test_key"}
	return NewAdapter(cfg, nil, testExecutor(1), nil)
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestAdapter_Name(t *testing.T) {
	adapter := newTestAdapter("")
	assert.Equal(t, "kiwi", adapter.Name())
}

func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.FlightProvider = (*Adapter)(nil)
}

func TestAdapter_Search_SendsQueryParameters(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	req := domain.NewRoundTripSearch("MEX", "CUN", "2026-09-01", "2026-09-08")
	req.Passengers = 2
	req.CabinClass = domain.CabinEconomy

	_, err := adapter.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/v2/search", gotPath)
	assert.Equal(t, "kiwi_test_key", gotAPIKey)
	assert.Equal(t, "MEX", gotQuery.Get("fly_from"))
	assert.Equal(t, "CUN", gotQuery.Get("fly_to"))
	assert.Equal(t, "01/09/2026", gotQuery.Get("date_from"))
	assert.Equal(t, "01/09/2026", gotQuery.Get("date_to"))
	assert.Equal(t, "08/09/2026", gotQuery.Get("return_from"))
	assert.Equal(t, "08/09/2026", gotQuery.Get("return_to"))
	assert.Equal(t, "2", gotQuery.Get("adults"))
	assert.Equal(t, "M", gotQuery.Get("selected_cabins"))
	assert.Equal(t, "USD", gotQuery.Get("curr"))
	assert.Equal(t, "50", gotQuery.Get("limit"))
	assert.False(t, gotQuery.Has("dtime_from"))
}

func TestAdapter_Search_TimeOfDayUsesNativeFilter(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay domain.TimeOfDay
		wantFrom  string
		wantTo    string
	}{
		{name: "morning", timeOfDay: domain.TimeOfDayMorning, wantFrom: "06:00", wantTo: "12:00"},
		{name: "evening", timeOfDay: domain.TimeOfDayEvening, wantFrom: "18:00", wantTo: "22:00"},
		{name: "night", timeOfDay: domain.TimeOfDayNight, wantFrom: "22:00", wantTo: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				_, _ = w.Write([]byte(`{"data": []}`))
			}))
			defer server.Close()

			adapter := newTestAdapter(server.URL)
			req := domain.NewOneWaySearch("MEX", "CUN", "2026-09-01")
			req.TimeOfDay = tt.timeOfDay

			_, err := adapter.Search(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFrom, gotQuery.Get("dtime_from"))
			assert.Equal(t, tt.wantTo, gotQuery.Get("dtime_to"))
		})
	}
}

func TestAdapter_Search_AnyTimeOfDaySkipsNativeFilter(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	req := domain.NewOneWaySearch("MEX", "CUN", "2026-09-01")
	req.TimeOfDay = domain.TimeOfDayAny

	_, err := adapter.Search(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, gotQuery.Has("dtime_from"))
	assert.False(t, gotQuery.Has("dtime_to"))
}

func TestAdapter_Search_NormalizesItineraries(t *testing.T) {
	server := httptest.NewServer(serveJSON(validResponse))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	req := domain.NewRoundTripSearch("MEX", "CUN", "2026-09-01", "2026-09-08")
	req.CabinClass = domain.CabinEconomy

	flights, err := adapter.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, flights, 2)

	first := flights[0]
	assert.Equal(t, "kiwi::BgsgEjgGUFsgOAkVWys", first.OfferID)
	assert.Equal(t, "kiwi", first.Provider)
	assert.Equal(t, 198.5, first.Price.Amount)
	assert.Equal(t, "USD", first.Price.Currency)
	assert.Equal(t, domain.CabinEconomy, first.CabinClass)
	assert.False(t, first.Refundable)
	assert.False(t, first.Conditions.Changeable)
	assert.Equal(t, 130, first.Duration.TotalMinutes, "7800 seconds outbound")

	require.Len(t, first.Segments, 2)
	outbound := first.Segments[0]
	assert.Equal(t, "MEX", outbound.Origin)
	assert.Equal(t, "CUN", outbound.Destination)
	assert.Equal(t, "AM", outbound.Carrier.Code)
	assert.Equal(t, "512", outbound.FlightNumber, "integer flight_no becomes a string")
	assert.Equal(t, "PT2H10M", outbound.Duration)
	assert.Equal(t, 0, outbound.SliceIndex)
	assert.Equal(t, 1, first.Segments[1].SliceIndex)

	// The true UTC instant re-expressed at the departure airport.
	assert.Equal(t, 8, outbound.DepartureTime.Hour())
	wantDep := time.Date(2026, 9, 1, 8, 15, 0, 0, timeutil.AirportLocation("MEX"))
	assert.True(t, outbound.DepartureTime.Equal(wantDep))

	second := flights[1]
	assert.Equal(t, "kiwi::HhsgQjgGUFsgOAkVXlt", second.OfferID)
	assert.Equal(t, 1, second.Stops())
	assert.Equal(t, 285, second.Duration.TotalMinutes)
}

func TestAdapter_Search_MultiCityYieldsNoOffers(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	req := domain.SearchRequest{
		Slices: []domain.SearchSlice{
			{Origin: "MEX", Destination: "CUN", DepartureDate: "2026-09-01"},
			{Origin: "CUN", Destination: "MID", DepartureDate: "2026-09-05"},
			{Origin: "MID", Destination: "MEX", DepartureDate: "2026-09-08"},
		},
	}

	flights, err := adapter.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, flights)
	assert.Equal(t, int32(0), calls.Load(), "multi-city should not reach the supplier")
}

func TestAdapter_Search_FallsBackToItineraryID(t *testing.T) {
	response := `{
		"currency": "USD",
		"data": [
			{
				"id": "itin_no_token",
				"booking_token": "",
				"flyFrom": "MEX", "flyTo": "CUN", "price": 100,
				"duration": {"departure": 7800, "return": 0, "total": 7800},
				"route": [{
					"id": "r1", "flyFrom": "MEX", "flyTo": "CUN", "airline": "AM", "flight_no": 1,
					"utc_departure": "2026-09-01T14:00:00.000Z", "utc_arrival": "2026-09-01T16:00:00.000Z", "return": 0
				}]
			},
			{
				"id": "",
				"booking_token": "",
				"flyFrom": "MEX", "flyTo": "CUN", "price": 90,
				"duration": {"departure": 7800, "return": 0, "total": 7800},
				"route": [{
					"id": "r2", "flyFrom": "MEX", "flyTo": "CUN", "airline": "AM", "flight_no": 2,
					"utc_departure": "2026-09-01T15:00:00.000Z", "utc_arrival": "2026-09-01T17:00:00.000Z", "return": 0
				}]
			}
		]
	}`
	server := httptest.NewServer(serveJSON(response))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	flights, err := adapter.Search(context.Background(), domain.NewOneWaySearch("MEX", "CUN", "2026-09-01"))

	require.NoError(t, err)
	require.Len(t, flights, 1, "itinerary with no identifiers is skipped")
	assert.Equal(t, "kiwi::itin_no_token", flights[0].OfferID)
}

func TestAdapter_Search_SkipsMalformedItineraries(t *testing.T) {
	response := `{
		"currency": "USD",
		"data": [
			{
				"id": "itin_bad_time",
				"booking_token": "tok_1",
				"flyFrom": "MEX", "flyTo": "CUN", "price": 100,
				"duration": {"departure": 7800, "return": 0, "total": 7800},
				"route": [{
					"id": "r1", "flyFrom": "MEX", "flyTo": "CUN", "airline": "AM", "flight_no": 1,
					"utc_departure": "not-a-time", "utc_arrival": "2026-09-01T16:00:00.000Z", "return": 0
				}]
			},
			{
				"id": "itin_ok",
				"booking_token": "tok_2",
				"flyFrom": "MEX", "flyTo": "CUN", "price": 120,
				"duration": {"departure": 7800, "return": 0, "total": 7800},
				"route": [{
					"id": "r2", "flyFrom": "MEX", "flyTo": "CUN", "airline": "AM", "flight_no": 2,
					"utc_departure": "2026-09-01T15:00:00.000Z", "utc_arrival": "2026-09-01T17:10:00.000Z", "return": 0
				}]
			}
		]
	}`
	server := httptest.NewServer(serveJSON(response))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	flights, err := adapter.Search(context.Background(), domain.NewOneWaySearch("MEX", "CUN", "2026-09-01"))

	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "kiwi::tok_2", flights[0].OfferID)
}

func TestAdapter_Search_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
	}{
		{name: "server error is retryable", status: http.StatusBadGateway, wantRetryable: true},
		{name: "rate limit is retryable", status: http.StatusTooManyRequests, wantRetryable: true},
		{name: "bad api key is not retryable", status: http.StatusUnauthorized, wantRetryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			adapter := newTestAdapter(server.URL)
			_, err := adapter.Search(context.Background(), domain.NewOneWaySearch("MEX", "CUN", "2026-09-01"))

			require.Error(t, err)
			var providerErr *domain.ProviderError
			require.ErrorAs(t, err, &providerErr)
			assert.Equal(t, ProviderName, providerErr.Provider)
			assert.Equal(t, tt.wantRetryable, providerErr.Retryable)
		})
	}
}

func TestAdapter_Search_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(validResponse))
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL, APIKey: "kiwi_test_key"}
	adapter := NewAdapter(cfg, nil, testExecutor(3), nil)

	flights, err := adapter.Search(context.Background(), domain.NewRoundTripSearch("MEX", "CUN", "2026-09-01", "2026-09-08"))

	require.NoError(t, err)
	assert.Len(t, flights, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAdapter_Search_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(serveJSON(validResponse))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flights, err := adapter.Search(ctx, domain.NewOneWaySearch("MEX", "CUN", "2026-09-01"))

	require.Error(t, err)
	assert.Empty(t, flights)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdapter_Search_NormalizationIsIdempotent(t *testing.T) {
	server := httptest.NewServer(serveJSON(validResponse))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	req := domain.NewRoundTripSearch("MEX", "CUN", "2026-09-01", "2026-09-08")

	first, err := adapter.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := adapter.Search(context.Background(), req)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("normalization not idempotent (-first +second):\n%s", diff)
	}
}
