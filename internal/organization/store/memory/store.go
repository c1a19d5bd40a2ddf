// Package memory keeps organization profiles in process memory.
package memory

import (
	"context"
	"errors"
	"sync"

	"adequa/internal/organization"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
)

type Store struct {
	mu       sync.RWMutex
	profiles map[id.OrganizationID]*organization.Profile
}

func New() *Store {
	return &Store{profiles: make(map[id.OrganizationID]*organization.Profile)}
}

func (s *Store) Get(_ context.Context, orgID id.OrganizationID) (*organization.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[orgID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Store) Save(_ context.Context, p *organization.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.OrganizationID] = p.Clone()
	return nil
}
