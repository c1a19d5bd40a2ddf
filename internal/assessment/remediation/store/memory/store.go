// Package memory keeps remediation tasks in process memory. It has no
// transactions; the remediation Engine serializes mutations per organization.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"adequa/internal/assessment/remediation"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/sentinel"
)

// Store is an in-memory task store. Tasks keep insertion order per organization.
type Store struct {
	mu    sync.RWMutex
	tasks map[id.OrganizationID][]*remediation.Task
}

// New creates an empty store.
func New() *Store {
	return &Store{tasks: make(map[id.OrganizationID][]*remediation.Task)}
}

func (s *Store) Create(_ context.Context, task *remediation.Task) error {
	if task == nil {
		return fmt.Errorf("nil task")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.OrganizationID] = append(s.tasks[task.OrganizationID], task.Clone())
	return nil
}

func (s *Store) ListByOrganization(_ context.Context, orgID id.OrganizationID) ([]*remediation.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*remediation.Task, 0, len(s.tasks[orgID]))
	for _, t := range s.tasks[orgID] {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks[orgID] {
		if t.ID == taskID {
			return t.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store) Update(_ context.Context, task *remediation.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks[task.OrganizationID] {
		if t.ID == task.ID {
			s.tasks[task.OrganizationID][i] = task.Clone()
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *Store) DeleteAllByOrganization(_ context.Context, orgID id.OrganizationID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tasks[orgID])
	delete(s.tasks, orgID)
	return n, nil
}

func (s *Store) CancelAllByOrganization(_ context.Context, orgID id.OrganizationID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks[orgID] {
		if t.Cancel(now) {
			n++
		}
	}
	return n, nil
}
