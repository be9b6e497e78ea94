// Package providerutil holds helpers shared by the supplier adapters.
package providerutil

import (
	"context"
	"errors"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
)

// WrapError converts a failure from the resilience layer into the
// domain error the aggregator expects from a provider. The retryable
// flag mirrors the transient classification that already drove the
// retry decision.
func WrapError(provider string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		return domain.NewProviderUnavailableError(provider)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewProviderTimeoutError(provider)
	case resilience.IsTransient(err):
		return domain.NewRetryableProviderError(provider, err)
	default:
		return domain.NewProviderError(provider, err)
	}
}
