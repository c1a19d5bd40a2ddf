package answerset

import (
	"context"

	id "adequa/pkg/domain"
)

// Store persists answer sets. Latest returns sentinel.ErrNotFound when the
// organization has never saved answers.
type Store interface {
	Latest(ctx context.Context, orgID id.OrganizationID) (*AnswerSet, error)
	Save(ctx context.Context, s *AnswerSet) error
}
