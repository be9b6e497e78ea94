package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

var errSupplier = errors.New("supplier unavailable")

func newTestBreaker(clock timeutil.Clock) *Breaker {
	return NewBreaker("duffel", BreakerConfig{
		FailureThreshold: 3,
		Cooldown:         60 * time.Second,
	}, clock)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half_open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestBreaker_ClosedAllowsCalls(t *testing.T) {
	b := newTestBreaker(timeutil.NewMockClockFromString("2026-09-01T10:00:00Z"))

	assert.NoError(t, b.Allow())
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := newTestBreaker(timeutil.NewMockClockFromString("2026-09-01T10:00:00Z"))

	b.RecordFailure(errSupplier)
	b.RecordFailure(errSupplier)
	assert.Equal(t, StateClosed, b.State())

	b.RecordFailure(errSupplier)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := newTestBreaker(timeutil.NewMockClockFromString("2026-09-01T10:00:00Z"))

	b.RecordFailure(errSupplier)
	b.RecordFailure(errSupplier)
	b.RecordSuccess()
	assert.Equal(t, 0, b.Failures())

	// Two more failures should not trip the breaker after the reset.
	b.RecordFailure(errSupplier)
	b.RecordFailure(errSupplier)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_FailsFastDuringCooldown(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}
	require.Equal(t, StateOpen, b.State())

	clock.Advance(59 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_HalfOpenAfterCooldown(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}

	clock.Advance(60 * time.Second)
	assert.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_HalfOpenAllowsSingleProbe(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}
	clock.Advance(60 * time.Second)

	require.NoError(t, b.Allow())
	// A second call while the probe is in flight is rejected.
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreaker_ProbeSuccessCloses(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}
	clock.Advance(60 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordSuccess()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Failures())
	assert.NoError(t, b.Allow())
}

func TestBreaker_ProbeFailureReopens(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}
	clock.Advance(60 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordFailure(errSupplier)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	// The cooldown restarts from the failed probe.
	clock.Advance(59 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
	clock.Advance(1 * time.Second)
	assert.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_ContextCanceledNotCounted(t *testing.T) {
	b := newTestBreaker(timeutil.NewMockClockFromString("2026-09-01T10:00:00Z"))

	for i := 0; i < 5; i++ {
		b.RecordFailure(context.Canceled)
	}

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Failures())
}

func TestBreaker_StateChangeHook(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")

	type transition struct {
		name     string
		from, to State
	}
	var transitions []transition

	b := NewBreaker("kiwi", BreakerConfig{
		FailureThreshold: 3,
		Cooldown:         60 * time.Second,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, transition{name, from, to})
		},
	}, clock)

	for i := 0; i < 3; i++ {
		b.RecordFailure(errSupplier)
	}
	clock.Advance(60 * time.Second)
	require.NoError(t, b.Allow())
	b.RecordSuccess()

	assert.Equal(t, []transition{
		{"kiwi", StateClosed, StateOpen},
		{"kiwi", StateOpen, StateHalfOpen},
		{"kiwi", StateHalfOpen, StateClosed},
	}, transitions)
}

func TestNewBreaker_AppliesDefaults(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	b := NewBreaker("amadeus", BreakerConfig{}, clock)

	// Default threshold is 3.
	b.RecordFailure(errSupplier)
	b.RecordFailure(errSupplier)
	assert.Equal(t, StateClosed, b.State())
	b.RecordFailure(errSupplier)
	assert.Equal(t, StateOpen, b.State())

	// Default cooldown is 60 seconds.
	clock.Advance(59 * time.Second)
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
	clock.Advance(1 * time.Second)
	assert.NoError(t, b.Allow())
}

func TestBreakerStore_LazyCreation(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	store := NewBreakerStore(DefaultBreakerConfig, clock)

	b1 := store.Get("duffel")
	b2 := store.Get("duffel")
	assert.Same(t, b1, b2)

	b3 := store.Get("amadeus")
	assert.NotSame(t, b1, b3)
}

func TestBreakerStore_StatesSnapshot(t *testing.T) {
	clock := timeutil.NewMockClockFromString("2026-09-01T10:00:00Z")
	store := NewBreakerStore(BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute}, clock)

	store.Get("duffel").RecordFailure(errSupplier)
	store.Get("amadeus")

	states := store.States()
	assert.Equal(t, map[string]State{
		"duffel":  StateOpen,
		"amadeus": StateClosed,
	}, states)
}
