package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"adequa/internal/audit"
)

// Store is an in-memory append-only audit log.
type Store struct {
	mu      sync.RWMutex
	records []audit.Record
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, record audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *Store) QueryRange(_ context.Context, start, end time.Time) ([]audit.Record, error) {
	s.mu.RLock()
	out := make([]audit.Record, 0)
	for _, r := range s.records {
		if !r.Timestamp.Before(start) && r.Timestamp.Before(end) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b audit.Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
