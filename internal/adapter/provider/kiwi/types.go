package kiwi

// KiwiResponse is the search response envelope.
type KiwiResponse struct {
	Data     []KiwiItinerary `json:"data"`
	Currency string          `json:"currency"`
}

// KiwiItinerary is one priced itinerary. Durations are in seconds.
type KiwiItinerary struct {
	ID           string       `json:"id"`
	BookingToken string       `json:"booking_token"`
	FlyFrom      string       `json:"flyFrom"`
	FlyTo        string       `json:"flyTo"`
	Price        float64      `json:"price"`
	Duration     KiwiDuration `json:"duration"`
	Route        []KiwiRoute  `json:"route"`
}

// KiwiDuration splits the itinerary duration by direction, in seconds.
type KiwiDuration struct {
	Departure int `json:"departure"`
	Return    int `json:"return"`
	Total     int `json:"total"`
}

// KiwiRoute is one flight in the itinerary. The Return flag assigns
// the flight to the outbound (0) or return (1) direction. The
// local_departure timestamps carry a misleading Z suffix while
// representing local wall-clock time, so only the utc_* fields are
// trusted.
type KiwiRoute struct {
	ID             string `json:"id"`
	FlyFrom        string `json:"flyFrom"`
	FlyTo          string `json:"flyTo"`
	Airline        string `json:"airline"`
	FlightNo       int    `json:"flight_no"`
	LocalDeparture string `json:"local_departure"`
	UTCDeparture   string `json:"utc_departure"`
	LocalArrival   string `json:"local_arrival"`
	UTCArrival     string `json:"utc_arrival"`
	Return         int    `json:"return"`
}
