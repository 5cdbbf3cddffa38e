package domain

// Role is the authorisation role supplied by the Auth collaborator.
type Role string

// Available roles.
const (
	// RoleOwner is a regular responsible actor; sees only their own processes.
	RoleOwner Role = "owner"

	// RoleSupervisor may read every process.
	RoleSupervisor Role = "supervisor"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleSupervisor
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Actor is an authenticated caller. Authentication itself happens upstream.
type Actor struct {
	// ID identifies the employee acting.
	ID string

	// Role is the role granted by the Auth collaborator.
	Role Role
}

// IsSupervisor reports whether the actor can see every process.
func (a Actor) IsSupervisor() bool {
	return a.Role == RoleSupervisor
}
