package audit

import (
	"sync"
	"time"
)

// CircuitBreaker stops the Recorder from hammering an audit store that keeps
// failing. While open, records are dropped without a store call.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures      int
	openUntil     time.Time
	isOpen        bool
	trialInFlight bool
}

// NewCircuitBreaker opens after threshold consecutive failures and stays open
// for cooldown before letting a single trial call through.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &CircuitBreaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow reports whether a store call may be attempted. After the cooldown
// exactly one caller is let through; the circuit stays open until that trial
// call is recorded.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if !cb.isOpen {
		return true
	}
	if cb.trialInFlight || !cb.now().After(cb.openUntil) {
		return false
	}
	cb.trialInFlight = true
	return true
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.isOpen = false
	cb.trialInFlight = false
}

// RecordFailure counts a failure and opens the circuit at the threshold. A
// failed trial call reopens it for another cooldown.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	if cb.trialInFlight || cb.failures >= cb.threshold {
		cb.isOpen = true
		cb.trialInFlight = false
		cb.openUntil = cb.now().Add(cb.cooldown)
	}
}

// IsOpen reports whether records are currently being dropped.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.isOpen
}
