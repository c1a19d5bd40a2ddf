package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "adequa/pkg/domain"
	"adequa/pkg/platform/middleware/auth"
)

func TestEvaluate(t *testing.T) {
	a := id.UserID(uuid.New())
	b := id.UserID(uuid.New())

	tests := []struct {
		name      string
		requestor id.UserID
		owner     id.UserID
		role      string
		want      Decision
	}{
		{"user on own resource", a, a, "user", Decision{HasAccess: true, Level: LevelOwner}},
		{"user on foreign resource", a, b, "user", Decision{HasAccess: false, Level: LevelDenied}},
		{"admin on foreign resource", a, b, RoleAdmin, Decision{HasAccess: true, Level: LevelAdmin}},
		{"admin on own resource", a, a, RoleAdmin, Decision{HasAccess: true, Level: LevelOwner}},
		{"empty role treated as user", a, b, "", Decision{HasAccess: false, Level: LevelDenied}},
		{"nil requestor never owns", id.UserID{}, id.UserID{}, "user", Decision{HasAccess: false, Level: LevelDenied}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.requestor, tt.owner, tt.role))
		})
	}
}

// The admin middleware and Evaluate must agree on which claim is the admin role.
func TestAdminRoleMatchesTokenClaim(t *testing.T) {
	assert.Equal(t, auth.RoleAdmin, RoleAdmin)

	a, b := id.UserID(uuid.New()), id.UserID(uuid.New())
	assert.Equal(t, Decision{HasAccess: true, Level: LevelAdmin}, Evaluate(a, b, auth.RoleAdmin))
}
