package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/retry"
)

// Executor wraps supplier calls with the full resilience chain:
// rate limiting, circuit breaking, and retries on transient errors.
type Executor struct {
	limiter  *ProviderLimiter
	breakers *BreakerStore
	retryCfg retry.Config
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewExecutor creates an Executor. The limiter and metrics may be nil;
// the breaker store is required.
func NewExecutor(limiter *ProviderLimiter, breakers *BreakerStore, retryCfg retry.Config, m *metrics.Metrics, log *logger.Logger) *Executor {
	if log == nil {
		log = logger.Nop()
	}
	return &Executor{
		limiter:  limiter,
		breakers: breakers,
		retryCfg: retryCfg,
		metrics:  m,
		log:      log,
	}
}

// Breakers exposes the breaker store, primarily for health reporting.
func (e *Executor) Breakers() *BreakerStore {
	return e.breakers
}

// Execute runs op against the named provider through the resilience
// chain. The call order is: wait for a rate limit token, check the
// circuit breaker, then run op with retries on transient errors. A
// half-open trial call is attempted exactly once, without retries. The
// final outcome (after retries) is recorded on the breaker.
func Execute[T any](ctx context.Context, e *Executor, provider string, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, provider); err != nil {
			return zero, err
		}
	}

	breaker := e.breakers.Get(provider)
	if err := breaker.Allow(); err != nil {
		e.log.Warn().
			Str("provider", provider).
			Msg("circuit open, failing fast")
		return zero, err
	}

	cfg := e.retryCfg
	if breaker.State() == StateHalfOpen {
		// The half-open trial is a single shot.
		cfg.MaxAttempts = 1
	}
	cfg.RetryIf = IsTransient
	cfg.OnRetry = func(attempt int, err error) {
		if e.metrics != nil {
			e.metrics.IncProviderRetry(provider)
		}
		e.log.Warn().
			Str("provider", provider).
			Int("attempt", attempt).
			Err(err).
			Msg("retrying provider call")
	}

	start := time.Now()
	result, err := retry.DoWithResult(ctx, func() (T, error) {
		return op(ctx)
	}, cfg)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.ObserveProviderLatency(provider, elapsed.Seconds())
	}

	if err != nil {
		breaker.RecordFailure(err)
		if e.metrics != nil && !errors.Is(err, context.Canceled) {
			e.metrics.IncProviderFailure(provider)
		}
		return zero, err
	}

	breaker.RecordSuccess()
	return result, nil
}
