package domain

import "time"

// Role is the authorization tier assigned to an account. The set is closed:
// only USER and ADMIN exist.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account is the domain model for a registered identity.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
