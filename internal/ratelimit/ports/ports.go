// Package ports defines the interfaces the ratelimit service depends on.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks CounterStore,AuditRecorder

import (
	"context"
	"time"

	"adequa/internal/audit"
)

// CounterStore keeps fixed-window counters keyed by (actor, operation).
type CounterStore interface {
	// Increment counts one call against key. A missing or expired window is
	// replaced by a new one of the given length starting at now, with count 1.
	// It returns the count after the increment and the window's reset time.
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (count int, resetAt time.Time, err error)
}

// AuditRecorder records rejected calls.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) audit.Outcome
}
