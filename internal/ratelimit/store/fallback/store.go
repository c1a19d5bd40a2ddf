// Package fallback keeps rate limiting alive through primary counter store outages.
//
// Calls go to the primary store while it is healthy. A failed call is counted
// in the secondary (in-process) store instead, and after repeated failures the
// primary is skipped entirely, apart from one trial call per interval, until it
// recovers. Counts taken during an outage are not merged back.
package fallback

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"adequa/internal/ratelimit/ports"
)

const (
	defaultFailureThreshold = 5
	defaultSuccessThreshold = 3
	defaultRetryInterval    = 10 * time.Second
)

// Store implements ports.CounterStore over a primary and a secondary store.
type Store struct {
	primary   ports.CounterStore
	secondary ports.CounterStore
	breaker   *circuitBreaker
	logger    *slog.Logger

	failures      int
	successes     int
	retryInterval time.Duration
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithThresholds sets how many consecutive failures mark the store degraded
// and how many consecutive successes clear it.
func WithThresholds(failures, successes int) Option {
	return func(s *Store) {
		s.failures, s.successes = failures, successes
	}
}

// WithRetryInterval sets how often a degraded store retries the primary.
func WithRetryInterval(d time.Duration) Option {
	return func(s *Store) {
		s.retryInterval = d
	}
}

func New(primary, secondary ports.CounterStore, opts ...Option) (*Store, error) {
	if primary == nil || secondary == nil {
		return nil, errors.New("primary and secondary counter stores are required")
	}
	s := &Store{
		primary:       primary,
		secondary:     secondary,
		logger:        slog.Default(),
		failures:      defaultFailureThreshold,
		successes:     defaultSuccessThreshold,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.breaker = newCircuitBreaker(s.failures, s.successes, s.retryInterval)
	return s, nil
}

// Degraded reports whether the primary store is considered down.
func (s *Store) Degraded() bool {
	return s.breaker.isOpen()
}

func (s *Store) Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	if !s.breaker.allowPrimary(now) {
		return s.secondary.Increment(ctx, key, window, now)
	}

	count, resetAt, err := s.primary.Increment(ctx, key, window, now)
	if err == nil {
		if s.breaker.recordSuccess() {
			s.logger.InfoContext(ctx, "rate limit counter store recovered")
		}
		return count, resetAt, nil
	}

	if s.breaker.recordFailure(now) {
		s.logger.ErrorContext(ctx, "rate limit counter store degraded, counting in memory", "error", err)
	} else {
		s.logger.WarnContext(ctx, "rate limit counter store failed", "error", err)
	}
	return s.secondary.Increment(ctx, key, window, now)
}
