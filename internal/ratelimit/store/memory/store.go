// Package memory keeps fixed-window counters in process memory.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// window is one (actor, operation) counter. Its mutex guards count and resetAt;
// there is no store-wide lock.
type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	// removed is set by Sweep once the window has left the map.
	removed bool
}

// Store implements ports.CounterStore over a sync.Map of windows.
type Store struct {
	windows sync.Map // string -> *window
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Increment counts one call against key.
func (s *Store) Increment(_ context.Context, key string, length time.Duration, now time.Time) (int, time.Time, error) {
	for {
		v, _ := s.windows.LoadOrStore(key, &window{})
		w := v.(*window)

		w.mu.Lock()
		if w.removed {
			// Swept between load and lock; retry against the fresh entry.
			w.mu.Unlock()
			continue
		}
		if w.count == 0 || !now.Before(w.resetAt) {
			w.count = 0
			w.resetAt = now.Add(length)
		}
		w.count++
		count, resetAt := w.count, w.resetAt
		w.mu.Unlock()
		return count, resetAt, nil
	}
}

// Sweep drops every window that expired at or before now and returns how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	dropped := 0
	s.windows.Range(func(k, v any) bool {
		w := v.(*window)
		w.mu.Lock()
		if !w.removed && !now.Before(w.resetAt) {
			w.removed = true
			s.windows.CompareAndDelete(k, v)
			dropped++
		}
		w.mu.Unlock()
		return true
	})
	return dropped
}

// Len returns the number of live windows.
func (s *Store) Len() int {
	n := 0
	s.windows.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 && logger != nil {
				logger.DebugContext(ctx, "swept rate limit windows", "count", n)
			}
		}
	}
}
