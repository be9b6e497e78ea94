package duffel

// Request payload for POST /air/offer_requests.

// DuffelRequest is the envelope Duffel expects around an offer request.
type DuffelRequest struct {
	Data DuffelOfferRequest `json:"data"`
}

// DuffelOfferRequest describes the journey to price.
type DuffelOfferRequest struct {
	Slices     []DuffelRequestSlice     `json:"slices"`
	Passengers []DuffelRequestPassenger `json:"passengers"`
	CabinClass string                   `json:"cabin_class,omitempty"`
}

// DuffelRequestSlice is one requested leg.
type DuffelRequestSlice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

// DuffelRequestPassenger declares one traveller by type.
type DuffelRequestPassenger struct {
	Type string `json:"type"`
}

// Response payload. With return_offers=true the created offer request
// carries its offers inline.

// DuffelResponse is the envelope around the created offer request.
type DuffelResponse struct {
	Data DuffelOfferRequestData `json:"data"`
}

// DuffelOfferRequestData is the created offer request with its offers.
type DuffelOfferRequestData struct {
	ID         string            `json:"id"`
	Passengers []DuffelPassenger `json:"passengers"`
	Offers     []DuffelOffer     `json:"offers"`
}

// DuffelPassenger is a priced traveller. Its ID must be echoed back
// when the offer is booked.
type DuffelPassenger struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// DuffelOffer is a single priced offer.
type DuffelOffer struct {
	ID            string            `json:"id"`
	TotalAmount   string            `json:"total_amount"`
	TotalCurrency string            `json:"total_currency"`
	ExpiresAt     string            `json:"expires_at"`
	Conditions    DuffelConditions  `json:"conditions"`
	Slices        []DuffelSlice     `json:"slices"`
	Passengers    []DuffelPassenger `json:"passengers"`
}

// DuffelConditions carries the fare flexibility rules.
type DuffelConditions struct {
	ChangeBeforeDeparture *DuffelCondition `json:"change_before_departure"`
	RefundBeforeDeparture *DuffelCondition `json:"refund_before_departure"`
}

// DuffelCondition is one flexibility rule with its optional penalty.
type DuffelCondition struct {
	Allowed         bool    `json:"allowed"`
	PenaltyAmount   *string `json:"penalty_amount"`
	PenaltyCurrency *string `json:"penalty_currency"`
}

// DuffelSlice is one priced leg of an offer.
type DuffelSlice struct {
	Origin      DuffelPlace     `json:"origin"`
	Destination DuffelPlace     `json:"destination"`
	Segments    []DuffelSegment `json:"segments"`
}

// DuffelPlace is an airport reference.
type DuffelPlace struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
}

// DuffelSegment is one flight within a slice. Departure and arrival
// times are zone-less local timestamps.
type DuffelSegment struct {
	ID                           string        `json:"id"`
	Origin                       DuffelPlace   `json:"origin"`
	Destination                  DuffelPlace   `json:"destination"`
	DepartingAt                  string        `json:"departing_at"`
	ArrivingAt                   string        `json:"arriving_at"`
	Duration                     string        `json:"duration"`
	MarketingCarrier             DuffelCarrier `json:"marketing_carrier"`
	MarketingCarrierFlightNumber string        `json:"marketing_carrier_flight_number"`
}

// DuffelCarrier is an airline reference.
type DuffelCarrier struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
}
