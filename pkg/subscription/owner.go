package subscription

import "github.com/google/uuid"

// Role is the actor's role within their school, if any.
type Role string

const (
	RoleSchoolAdmin Role = "school_admin"
	RoleTeacher     Role = "teacher"
)

// Actor is the authenticated caller of a billing operation, as resolved by
// the application's auth layer. SchoolID is nil for unaffiliated teachers.
type Actor struct {
	UserID   uuid.UUID
	SchoolID *uuid.UUID
	Role     Role
}

// IsSchoolAdmin reports whether the actor administers a school.
func (a Actor) IsSchoolAdmin() bool {
	return a.SchoolID != nil && a.Role == RoleSchoolAdmin
}

// ResolveOwner decides which owner a billing action targets. The action
// targets the school owner iff the actor is affiliated with a school, holds
// the administrator role, and the requested plan is organization-scoped;
// otherwise it targets the actor's individual owner.
//
// The same predicate is applied at checkout and portal session creation so an
// actor is never routed to inconsistent billing identities across the two
// flows. An organization-scoped purchase attempted without the administrator
// role (or without any school affiliation) fails with ErrPermissionDenied
// rather than silently billing the individual.
func ResolveOwner(actor Actor, plan Plan) (Owner, error) {
	if !plan.OrganizationScoped {
		return UserOwner(actor.UserID), nil
	}
	if !actor.IsSchoolAdmin() {
		return Owner{}, ErrPermissionDenied
	}
	return SchoolOwner(*actor.SchoolID), nil
}
