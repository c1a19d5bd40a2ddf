// Package memory keeps answer sets in process memory.
package memory

import (
	"context"
	"errors"
	"sync"

	"adequa/internal/assessment/answerset"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
)

// Store keeps every saved set per organization in save order.
type Store struct {
	mu   sync.RWMutex
	sets map[id.OrganizationID][]*answerset.AnswerSet
}

func New() *Store {
	return &Store{sets: make(map[id.OrganizationID][]*answerset.AnswerSet)}
}

func (s *Store) Latest(_ context.Context, orgID id.OrganizationID) (*answerset.AnswerSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sets := s.sets[orgID]
	if len(sets) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return sets[len(sets)-1].Clone(), nil
}

func (s *Store) Save(_ context.Context, set *answerset.AnswerSet) error {
	if set == nil {
		return errors.New("nil answer set")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.OrganizationID] = append(s.sets[set.OrganizationID], set.Clone())
	return nil
}

// Count returns how many sets the organization has saved.
func (s *Store) Count(orgID id.OrganizationID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets[orgID])
}
