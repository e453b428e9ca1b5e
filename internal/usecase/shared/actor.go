package shared

import (
	"car-rental-api/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated identity on whose behalf a command runs.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// IsPrivileged reports whether the actor may drive lifecycle transitions
// for any reservation, not just their own.
func (a Actor) IsPrivileged() bool {
	return a.Role.IsPrivileged()
}

// SystemActor is the identity used by scheduled jobs.
var SystemActor = Actor{ID: uuid.Nil, Role: user.RoleAdmin}
