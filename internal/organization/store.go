package organization

import (
	"context"

	id "adequa/pkg/domain"
)

// Store persists organization profiles. Get returns sentinel.ErrNotFound for
// an unknown organization.
type Store interface {
	Get(ctx context.Context, orgID id.OrganizationID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
