package remediation

import (
	"context"
	"time"

	id "adequa/pkg/domain"
)

// Store persists tasks. Get returns sentinel.ErrNotFound for unknown tasks.
type Store interface {
	Create(ctx context.Context, task *Task) error
	ListByOrganization(ctx context.Context, orgID id.OrganizationID) ([]*Task, error)
	Get(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*Task, error)
	Update(ctx context.Context, task *Task) error
	DeleteAllByOrganization(ctx context.Context, orgID id.OrganizationID) (int, error)
	CancelAllByOrganization(ctx context.Context, orgID id.OrganizationID, now time.Time) (int, error)
}

// Transactor runs fn as one logical transaction scoped to an organization.
// Stores backed by a database implement it natively; otherwise the Engine
// falls back to per-organization locking.
type Transactor interface {
	RunInTx(ctx context.Context, orgID id.OrganizationID, fn func(ctx context.Context, store Store) error) error
}
