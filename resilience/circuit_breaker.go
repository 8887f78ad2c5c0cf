package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows requests to pass through.
	StateClosed State = iota
	// StateOpen blocks all requests.
	StateOpen
	// StateHalfOpen allows limited requests to test recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned without calling the function while the circuit is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies this circuit breaker for metrics/logging.
	Name string
	// MaxFailures is the number of consecutive failures before opening.
	MaxFailures int
	// Timeout is how long the circuit stays open before a trial call.
	Timeout time.Duration
	// HalfOpenMaxCalls is the number of trial calls allowed when half-open.
	HalfOpenMaxCalls int
	// IsFailure decides whether an error counts against the circuit.
	// Defaults to IgnoreCanceled.
	IsFailure func(err error) bool
	// OnStateChange is called when state changes.
	OnStateChange func(name string, from, to State)
}

// DefaultCircuitBreakerConfig returns 5 failures / 30s open defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// IgnoreCanceled counts every error except a caller cancelling its context.
// A client hanging up says nothing about the health of the upstream.
func IgnoreCanceled(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// CircuitBreaker fails fast while an upstream is unhealthy.
//
// States:
//   - Closed: normal operation, requests pass through
//   - Open: requests fail immediately with ErrCircuitOpen
//   - Half-Open: after Timeout, limited trial requests decide the next state
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	openedAt      time.Time
	halfOpenCalls int
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = IgnoreCanceled
	}
	return &CircuitBreaker{config: config, state: StateClosed}
}

// Execute runs fn through the circuit breaker.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}
	err := fn()
	cb.record(err)
	return err
}

// State returns the current circuit breaker state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current()
}

// Failures returns the current consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.current() {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls < cb.config.HalfOpenMaxCalls {
			cb.halfOpenCalls++
			return true
		}
	}
	return false
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.current()
	if !cb.config.IsFailure(err) {
		if err != nil && state == StateHalfOpen {
			// Give the trial slot back; the call told us nothing.
			cb.halfOpenCalls--
			return
		}
		switch state {
		case StateClosed:
			cb.failures = 0
		case StateHalfOpen:
			cb.successes++
			if cb.successes >= cb.config.HalfOpenMaxCalls {
				cb.transition(StateClosed)
			}
		}
		return
	}

	cb.failures++
	switch state {
	case StateClosed:
		if cb.failures >= cb.config.MaxFailures {
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.transition(StateOpen)
	}
}

// current returns the state, moving Open to HalfOpen once Timeout elapsed.
// Callers hold mu.
func (cb *CircuitBreaker) current() State {
	if cb.state == StateOpen && time.Since(cb.openedAt) >= cb.config.Timeout {
		cb.transition(StateHalfOpen)
	}
	return cb.state
}

// transition moves to a new state and resets the per-state counters.
// Callers hold mu.
func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.successes = 0
	cb.halfOpenCalls = 0
	switch to {
	case StateClosed:
		cb.failures = 0
	case StateOpen:
		cb.openedAt = time.Now()
	}
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
