package fallback

import (
	"sync"
	"time"
)

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

// circuitBreaker routes counter calls away from a failing primary store.
//   - Closed: every call goes to the primary.
//   - Open after failureThreshold consecutive failures: calls go to the
//     secondary, except one trial call per retryInterval.
//   - A successful trial call half-opens the circuit: calls go to the primary again
//     and successThreshold consecutive successes close it. Any failure reopens it.
type circuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	retryInterval    time.Duration
	nextTrial        time.Time
}

func newCircuitBreaker(failureThreshold, successThreshold int, retryInterval time.Duration) *circuitBreaker {
	return &circuitBreaker{
		state:            circuitClosed,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		retryInterval:    retryInterval,
	}
}

func (c *circuitBreaker) isOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != circuitClosed
}

// allowPrimary reports whether a call at now may use the primary store. While
// open, only the first caller after each retry interval is let through.
func (c *circuitBreaker) allowPrimary(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != circuitOpen {
		return true
	}
	if now.Before(c.nextTrial) {
		return false
	}
	c.nextTrial = now.Add(c.retryInterval)
	return true
}

// recordFailure returns true when this failure opened the circuit.
func (c *circuitBreaker) recordFailure(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureCount++
	c.successCount = 0
	switch c.state {
	case circuitOpen:
		c.nextTrial = now.Add(c.retryInterval)
		return false
	case circuitHalfOpen:
		c.state = circuitOpen
		c.nextTrial = now.Add(c.retryInterval)
		return true
	}
	if c.failureCount >= c.failureThreshold {
		c.state = circuitOpen
		c.nextTrial = now.Add(c.retryInterval)
		return true
	}
	return false
}

// recordSuccess returns true when this success closed the circuit.
func (c *circuitBreaker) recordSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == circuitClosed {
		c.failureCount = 0
		return false
	}
	c.state = circuitHalfOpen
	c.successCount++
	if c.successCount >= c.successThreshold {
		c.state = circuitClosed
		c.failureCount = 0
		c.successCount = 0
		return true
	}
	return false
}
