package resilience

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/retry"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

func fastRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		JitterFactor: 0,
	}
}

func newTestExecutor(clock timeutil.Clock, m *metrics.Metrics) *Executor {
	breakers := NewBreakerStore(BreakerConfig{
		FailureThreshold: 3,
		Cooldown:         60 * time.Second,
	}, clock)
	return NewExecutor(nil, breakers, fastRetryConfig(), m, logger.Nop())
}

func TestExecute_Success(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	e := newTestExecutor(clock, metrics.Nop())

	var calls int32
	result, err := Execute(context.Background(), e, "duffel", func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"off_1", "off_2"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"off_1", "off_2"}, result)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, StateClosed, e.Breakers().Get("duffel").State())
}

func TestExecute_RetriesTransientErrors(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	m := metrics.Nop()
	e := newTestExecutor(clock, m)

	var calls int32
	result, err := Execute(context.Background(), e, "duffel", func(ctx context.Context) (string, error) {
		count := atomic.AddInt32(&calls, 1)
		if count < 3 {
			return "", NewStatusError(503, "503 Service Unavailable")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, int32(3), calls)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ProviderRetries.WithLabelValues("duffel")))

	// The call ultimately succeeded, so no failure is recorded.
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ProviderErrors.WithLabelValues("duffel")))
	assert.Equal(t, 0, e.Breakers().Get("duffel").Failures())
}

func TestExecute_DoesNotRetryClientErrors(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	m := metrics.Nop()
	e := newTestExecutor(clock, m)

	var calls int32
	_, err := Execute(context.Background(), e, "amadeus", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", NewStatusError(400, "400 Bad Request")
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ProviderRetries.WithLabelValues("amadeus")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProviderErrors.WithLabelValues("amadeus")))
	assert.Equal(t, 1, e.Breakers().Get("amadeus").Failures())
}

func TestExecute_BreakerOpensAndFailsFast(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	e := newTestExecutor(clock, metrics.Nop())

	var calls int32
	failing := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", NewStatusError(400, "400 Bad Request")
	}

	for i := 0; i < 3; i++ {
		_, err := Execute(context.Background(), e, "kiwi", failing)
		require.Error(t, err)
	}
	require.Equal(t, StateOpen, e.Breakers().Get("kiwi").State())

	// The fourth call fails fast without invoking the operation.
	_, err := Execute(context.Background(), e, "kiwi", failing)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), calls)
}

func TestExecute_ProbeAfterCooldownCloses(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	e := newTestExecutor(clock, metrics.Nop())

	for i := 0; i < 3; i++ {
		_, err := Execute(context.Background(), e, "duffel", func(ctx context.Context) (string, error) {
			return "", NewStatusError(400, "400 Bad Request")
		})
		require.Error(t, err)
	}
	require.Equal(t, StateOpen, e.Breakers().Get("duffel").State())

	clock.Advance(60 * time.Second)

	result, err := Execute(context.Background(), e, "duffel", func(ctx context.Context) (string, error) {
		return "recovered", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.Equal(t, StateClosed, e.Breakers().Get("duffel").State())
}

func TestExecute_HalfOpenProbeIsSingleAttempt(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	e := newTestExecutor(clock, metrics.Nop())

	var calls int32
	failing := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", NewStatusError(503, "503 Service Unavailable")
	}

	// Three failed executions, each exhausting its three attempts.
	for i := 0; i < 3; i++ {
		_, err := Execute(context.Background(), e, "kiwi", failing)
		require.Error(t, err)
	}
	require.Equal(t, int32(9), atomic.LoadInt32(&calls))
	require.Equal(t, StateOpen, e.Breakers().Get("kiwi").State())

	clock.Advance(60 * time.Second)

	// The trial call runs exactly once even though the error is transient.
	_, err := Execute(context.Background(), e, "kiwi", failing)
	require.Error(t, err)
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls))
	assert.Equal(t, StateOpen, e.Breakers().Get("kiwi").State())
}

func TestExecute_ContextCanceledNotCountedAsFailure(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	m := metrics.Nop()
	e := newTestExecutor(clock, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	_, err := Execute(ctx, e, "duffel", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, int32(0), calls)
	assert.Equal(t, StateClosed, e.Breakers().Get("duffel").State())
	assert.Equal(t, 0, e.Breakers().Get("duffel").Failures())
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ProviderErrors.WithLabelValues("duffel")))
}

func TestExecute_RateLimiterBlocksWhenExhausted(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	limiter := NewProviderLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	breakers := NewBreakerStore(DefaultBreakerConfig, clock)
	e := NewExecutor(limiter, breakers, fastRetryConfig(), metrics.Nop(), logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var calls int32
	op := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	}

	_, err := Execute(ctx, e, "duffel", op)
	require.NoError(t, err)

	// The bucket is empty; the second call cannot get a token before the
	// deadline and fails without invoking the operation.
	_, err = Execute(ctx, e, "duffel", op)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls)
}

func TestExecute_ObservesLatency(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	m := metrics.Nop()
	e := newTestExecutor(clock, m)

	_, err := Execute(context.Background(), e, "duffel", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.ProviderLatency))
}
