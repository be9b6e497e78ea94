package amadeus

// AmadeusResponse is the flight offers search response envelope.
type AmadeusResponse struct {
	Data         []AmadeusOffer       `json:"data"`
	Dictionaries *AmadeusDictionaries `json:"dictionaries"`
}

// AmadeusDictionaries resolves the codes referenced by the offers.
type AmadeusDictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

// AmadeusOffer is a single priced flight offer.
type AmadeusOffer struct {
	ID          string             `json:"id"`
	Itineraries []AmadeusItinerary `json:"itineraries"`
	Price       AmadeusPrice       `json:"price"`
}

// AmadeusItinerary is one leg of the journey, matching a requested
// slice in order.
type AmadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []AmadeusSegment `json:"segments"`
}

// AmadeusSegment is one flight within an itinerary. Timestamps are
// zone-less local values.
type AmadeusSegment struct {
	Departure   AmadeusEndpoint `json:"departure"`
	Arrival     AmadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
}

// AmadeusEndpoint is a departure or arrival point.
type AmadeusEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// AmadeusPrice carries the offer totals as string decimals.
type AmadeusPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}
