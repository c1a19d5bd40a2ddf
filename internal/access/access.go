// Package access decides whether an actor may act on an organization-owned
// resource. Evaluate is pure: no I/O, no hidden state.
package access

import (
	id "adequa/pkg/domain"
	"adequa/pkg/requestcontext"
)

// Level classifies an access decision for audit records.
type Level string

const (
	LevelOwner  Level = "owner"
	LevelAdmin  Level = "admin"
	LevelDenied Level = "denied"
)

// RoleAdmin grants access to every organization's resources. It is the same
// role claim the admin middleware checks.
const RoleAdmin = requestcontext.RoleAdmin

// Decision is the outcome of an access evaluation. A denial is a value, not an
// error; callers translate it into an authorization failure.
type Decision struct {
	HasAccess bool  `json:"has_access"`
	Level     Level `json:"access_level"`
}

// Evaluate decides whether requestor may act on a resource owned by owner.
//
//   - admin role: always allowed; owner when the ids match, admin otherwise
//   - any other role: allowed only on own resources
func Evaluate(requestor, owner id.UserID, role string) Decision {
	sameSubject := !requestor.IsNil() && requestor == owner
	if role == RoleAdmin {
		if sameSubject {
			return Decision{HasAccess: true, Level: LevelOwner}
		}
		return Decision{HasAccess: true, Level: LevelAdmin}
	}
	if sameSubject {
		return Decision{HasAccess: true, Level: LevelOwner}
	}
	return Decision{HasAccess: false, Level: LevelDenied}
}
