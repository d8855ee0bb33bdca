// Package entity contains the core business objects of the project.
package entity

// Role represents the authorization role of a user account.
type Role string

const (
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "ADMIN"
	// RoleUser indicates a regular user account.
	RoleUser Role = "USER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}
