package domain

import "strings"

// offerIDSeparator joins the parts of a composite offer identifier.
// It never appears in provider names or supplier offer identifiers.
const offerIDSeparator = "::"

// OfferRef is the decoded form of a composite offer identifier. It names
// the offer's provider and the identifiers needed to reference the offer
// in the provider's own system.
type OfferRef struct {
	// Provider is the provider name segment (e.g., "duffel")
	Provider string `json:"provider"`

	// NativeOfferID is the provider's own offer identifier
	NativeOfferID string `json:"nativeOfferId"`

	// PassengerID is the provider's lead passenger identifier, when the
	// provider issues one
	PassengerID string `json:"passengerId,omitempty"`
}

// EncodeOfferID builds a portable composite offer identifier of the form
// provider::nativeOfferID or provider::nativeOfferID::passengerID.
//
// Behavior:
//   - Provider and native offer ID are required.
//   - No part may contain the "::" separator, so decoding stays unambiguous.
//   - The passenger ID part is appended only when non-empty.
func EncodeOfferID(provider, nativeOfferID, passengerID string) (string, error) {
	if provider == "" {
		return "", WrapMalformedOfferID("provider is required")
	}
	if nativeOfferID == "" {
		return "", WrapMalformedOfferID("native offer id is required")
	}
	for _, part := range []string{provider, nativeOfferID, passengerID} {
		if strings.Contains(part, offerIDSeparator) {
			return "", WrapMalformedOfferID("part %q contains the separator", part)
		}
	}

	id := provider + offerIDSeparator + nativeOfferID
	if passengerID != "" {
		id += offerIDSeparator + passengerID
	}
	return id, nil
}

// DecodeOfferID splits a composite offer identifier back into its parts.
// It validates structure only: the provider segment is not checked against
// the set of configured providers.
//
// Returns a wrapped ErrMalformedOfferID when the identifier is empty, has
// too few or too many parts, or has an empty provider or native ID part.
func DecodeOfferID(offerID string) (OfferRef, error) {
	if offerID == "" {
		return OfferRef{}, WrapMalformedOfferID("offer id is empty")
	}

	parts := strings.Split(offerID, offerIDSeparator)
	if len(parts) < 2 || len(parts) > 3 {
		return OfferRef{}, WrapMalformedOfferID("expected 2 or 3 parts, got %d in %q", len(parts), offerID)
	}
	if parts[0] == "" {
		return OfferRef{}, WrapMalformedOfferID("provider part is empty in %q", offerID)
	}
	if parts[1] == "" {
		return OfferRef{}, WrapMalformedOfferID("native offer id part is empty in %q", offerID)
	}

	ref := OfferRef{
		Provider:      parts[0],
		NativeOfferID: parts[1],
	}
	if len(parts) == 3 {
		if parts[2] == "" {
			return OfferRef{}, WrapMalformedOfferID("passenger id part is empty in %q", offerID)
		}
		ref.PassengerID = parts[2]
	}
	return ref, nil
}
