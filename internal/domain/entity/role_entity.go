package entity

// Role is the closed set of authorization roles a user can hold.
// The superuser flag lives on User and is orthogonal to Role.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the three enumerated roles.
// Unknown values are rejected at write time; stored rows are additionally
// guarded by a DB CHECK constraint.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
