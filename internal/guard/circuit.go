// Package guard protects calls to flaky collaborators.
package guard

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return fmt.Sprintf("CircuitState(%d)", int(s))
	}
}

// Result is the verdict of a Check.
type Result struct {
	Allowed bool
	Reason  string
}

// CircuitBreaker stops calling a remote after repeated failures and lets a
// single trial call through once the reset timeout has passed.
type CircuitBreaker struct {
	mu            sync.Mutex
	name          string
	failThreshold int
	resetTimeout  time.Duration
	now           func() time.Time

	state       CircuitState
	failures    int
	probing     bool
	lastFailure time.Time
}

// NewCircuitBreaker creates a breaker that opens after failThreshold
// consecutive failures.
func NewCircuitBreaker(name string, failThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	if failThreshold < 1 {
		failThreshold = 1
	}
	return &CircuitBreaker{
		name:          name,
		failThreshold: failThreshold,
		resetTimeout:  resetTimeout,
		now:           time.Now,
	}
}

// WithClock replaces the breaker's clock. Used by tests.
func (cb *CircuitBreaker) WithClock(now func() time.Time) *CircuitBreaker {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.now = now
	return cb
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Check reports whether a call may go through.
func (cb *CircuitBreaker) Check() Result {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		elapsed := cb.now().Sub(cb.lastFailure)
		if elapsed < cb.resetTimeout {
			return Result{
				Reason: fmt.Sprintf("circuit open for %s, resets in %s", cb.name, cb.resetTimeout-elapsed),
			}
		}
		cb.state = CircuitHalfOpen
		cb.probing = true
		return Result{Allowed: true}
	case CircuitHalfOpen:
		if cb.probing {
			return Result{Reason: fmt.Sprintf("circuit half-open for %s, trial in flight", cb.name)}
		}
		cb.probing = true
		return Result{Allowed: true}
	default:
		return Result{Allowed: true}
	}
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failures = 0
	cb.probing = false
}

// RecordFailure counts a failure. A failed trial reopens the circuit at once.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()
	cb.probing = false

	if cb.state == CircuitHalfOpen || cb.failures >= cb.failThreshold {
		cb.state = CircuitOpen
	}
}
