package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the flight search domain.
var (
	// ErrInvalidRequest indicates the search request failed validation.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrProviderTimeout indicates a provider did not respond in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable indicates a provider is temporarily not
	// accepting requests, typically because its circuit breaker is open.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedOfferID indicates an offer identifier that does not
	// follow the provider::nativeId composite format.
	ErrMalformedOfferID = errors.New("malformed offer id")
)

// ProviderError wraps an error from a specific provider, carrying the
// provider name and whether the failure is worth retrying.
type ProviderError struct {
	// Provider is the name of the provider that produced the error
	Provider string

	// Err is the underlying error
	Err error

	// Retryable indicates whether retrying the operation may succeed
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Err:       err,
		Retryable: false,
	}
}

// NewRetryableProviderError creates a retryable provider error.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Err:       err,
		Retryable: true,
	}
}

// NewProviderTimeoutError creates a retryable error indicating the provider
// exceeded its time budget.
func NewProviderTimeoutError(provider string) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Err:       ErrProviderTimeout,
		Retryable: true,
	}
}

// NewProviderUnavailableError creates a non-retryable error indicating the
// provider is being skipped, typically because its circuit is open.
func NewProviderUnavailableError(provider string) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Err:       ErrProviderUnavailable,
		Retryable: false,
	}
}

// ValidationError describes a single invalid field in a request.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes why the field is invalid
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// WrapInvalidRequest wraps ErrInvalidRequest with a formatted detail message.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// WrapMalformedOfferID wraps ErrMalformedOfferID with a formatted detail message.
func WrapMalformedOfferID(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedOfferID, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsProviderTimeout reports whether err is or wraps ErrProviderTimeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsProviderUnavailable reports whether err is or wraps ErrProviderUnavailable.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsMalformedOfferID reports whether err is or wraps ErrMalformedOfferID.
func IsMalformedOfferID(err error) bool {
	return errors.Is(err, ErrMalformedOfferID)
}
