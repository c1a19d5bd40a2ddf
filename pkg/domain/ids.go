package domain

import (
	"github.com/google/uuid"

	dErrors "adequa/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so the compiler rejects passing an
// organization id where a user id is expected.
type (
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	TaskID         uuid.UUID
	AnswerSetID    uuid.UUID
)

// ParseUserID parses an external user identifier.
// Errors: CodeInvalidInput when empty, malformed, or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseOrganizationID parses an external organization identifier.
func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := parseUUID(s, "organization id")
	return OrganizationID(u), err
}

// ParseTaskID parses an external task identifier.
func ParseTaskID(s string) (TaskID, error) {
	u, err := parseUUID(s, "task id")
	return TaskID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what+" format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" cannot be nil")
	}
	return u, nil
}

func NewOrganizationID() OrganizationID { return OrganizationID(uuid.New()) }
func NewTaskID() TaskID                 { return TaskID(uuid.New()) }
func NewAnswerSetID() AnswerSetID       { return AnswerSetID(uuid.New()) }

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id TaskID) String() string         { return uuid.UUID(id).String() }
func (id AnswerSetID) String() string    { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id TaskID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders ids as canonical UUID strings in JSON payloads.
func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id OrganizationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id TaskID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id AnswerSetID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

// UnmarshalText parses canonical UUID strings back into typed ids.
func (id *UserID) UnmarshalText(b []byte) error         { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *OrganizationID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *TaskID) UnmarshalText(b []byte) error         { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *AnswerSetID) UnmarshalText(b []byte) error    { return unmarshalUUID(b, (*uuid.UUID)(id)) }

func unmarshalUUID(b []byte, dst *uuid.UUID) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*dst = u
	return nil
}
