package entity

import (
	"time"
)

// ReservedUsername is routed to the caller's own profile and can never be
// registered.
const ReservedUsername = "me"

// User is the aggregate root for the identity domain. There is no password:
// ownership of the email address is proven with a confirmation code and the
// API hands out a JWT afterwards.
type User struct {
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        Role
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin reports whether the user passes admin checks. Superuser accounts
// always do, whatever their role value says.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

// EmailVerification holds the current confirmation code for a user, one row
// per user. The code is rotated on every signup call and read at token
// exchange; the API never deletes the row.
type EmailVerification struct {
	UserID           string
	ConfirmationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
