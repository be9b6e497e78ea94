// Package http provides the HTTP transport for the flight search API.
package http

import (
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// DecodedOfferResponse is the response body for the offer decode
// endpoint. It exposes the parts of a composite offer identifier so
// booking flows can address the offer in the owning supplier's system.
type DecodedOfferResponse struct {
	// OfferID echoes the composite identifier that was decoded
	OfferID string `json:"offerId"`

	// Provider is the supplier that issued the offer
	Provider string `json:"provider"`

	// NativeOfferID is the supplier's own offer identifier
	NativeOfferID string `json:"nativeOfferId"`

	// PassengerID is the supplier's lead passenger identifier, when issued
	PassengerID string `json:"passengerId,omitempty"`
}

// NewDecodedOfferResponse builds the decode response from an offer ref.
func NewDecodedOfferResponse(offerID string, ref domain.OfferRef) *DecodedOfferResponse {
	return &DecodedOfferResponse{
		OfferID:       offerID,
		Provider:      ref.Provider,
		NativeOfferID: ref.NativeOfferID,
		PassengerID:   ref.PassengerID,
	}
}
