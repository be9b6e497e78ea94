// Package resilience provides fault tolerance for supplier calls:
// per-provider circuit breakers, rate limiting, and transient error
// classification used to drive retries.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
)

// ErrCircuitOpen is returned by Allow when the breaker is rejecting calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state for a provider.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// String returns the lowercase state name used in logs and metric labels.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// BreakerConfig holds circuit breaker tuning parameters.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that trips
	// the breaker open.
	FailureThreshold int

	// Cooldown is how long the breaker stays open before allowing a
	// trial request.
	Cooldown time.Duration

	// OnStateChange is called on every transition. The hook runs with
	// the breaker lock held and must not call back into the breaker.
	OnStateChange func(name string, from, to State)
}

// DefaultBreakerConfig matches the service defaults: trip after 3
// consecutive failures, stay open for 60 seconds.
var DefaultBreakerConfig = BreakerConfig{
	FailureThreshold: 3,
	Cooldown:         60 * time.Second,
}

// Breaker is a per-provider circuit breaker.
//
// State machine:
//   - closed: calls pass through; consecutive failures are counted and
//     any success resets the count.
//   - open: calls fail fast with ErrCircuitOpen until the cooldown
//     elapses.
//   - half_open: a single trial call is allowed. Success closes the
//     breaker; failure reopens it and restarts the cooldown.
type Breaker struct {
	name  string
	cfg   BreakerConfig
	clock timeutil.Clock

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// NewBreaker creates a closed breaker for the named provider.
func NewBreaker(name string, cfg BreakerConfig, clock timeutil.Clock) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultBreakerConfig.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultBreakerConfig.Cooldown
	}
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Breaker{
		name:  name,
		cfg:   cfg,
		clock: clock,
		state: StateClosed,
	}
}

// Allow reports whether a call may proceed. It returns ErrCircuitOpen
// when the breaker is open and the cooldown has not yet elapsed, or when
// a half-open trial is already in flight.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if b.clock.Now().Sub(b.openedAt) < b.cfg.Cooldown {
			return ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return nil
	case StateHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
		return nil
	}
	return nil
}

// RecordSuccess reports a successful call. In half-open state it closes
// the breaker; in closed state it resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.probing = false
		b.failures = 0
		b.transition(StateClosed)
	case StateOpen:
		// Stale result from a call that started before the breaker
		// tripped. Ignore it.
	}
}

// RecordFailure reports a failed call. Context cancellation is not
// counted: it reflects the caller giving up, not provider health.
func (b *Breaker) RecordFailure(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.openedAt = b.clock.Now()
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.probing = false
		b.openedAt = b.clock.Now()
		b.transition(StateOpen)
	case StateOpen:
		// Already open, nothing to count.
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.name, from, to)
	}
}

// BreakerStore lazily creates one Breaker per provider, all sharing the
// same configuration and clock.
type BreakerStore struct {
	mu       sync.RWMutex
	cfg      BreakerConfig
	clock    timeutil.Clock
	breakers map[string]*Breaker
}

// NewBreakerStore creates an empty store.
func NewBreakerStore(cfg BreakerConfig, clock timeutil.Clock) *BreakerStore {
	return &BreakerStore{
		cfg:      cfg,
		clock:    clock,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for the named provider, creating it on first use.
func (s *BreakerStore) Get(name string) *Breaker {
	s.mu.RLock()
	b, exists := s.breakers[name]
	s.mu.RUnlock()

	if exists {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, exists = s.breakers[name]; exists {
		return b
	}

	b = NewBreaker(name, s.cfg, s.clock)
	s.breakers[name] = b
	return b
}

// States returns a snapshot of the current state of every known breaker.
func (s *BreakerStore) States() map[string]State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]State, len(s.breakers))
	for name, b := range s.breakers {
		states[name] = b.State()
	}
	return states
}
