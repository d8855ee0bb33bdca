// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core principal of the system: a username/password account
// that owns discovered cloud resources and saved checklist results.
type User struct {
	ID           int64     // Database-generated identifier.
	Username     string    // Unique login identifier, immutable after creation.
	PasswordHash string    // Bcrypt hash of the password. Never leaves the backend.
	Role         Role      // Authorization role (ADMIN or USER).
	FullName     string    // Display name, carried as a claim in access tokens.
	ExternalID   string    // Opaque identifier correlating this account with its AWS audit role.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// AuditExternalIDPrefix is prepended to a user's ExternalID to form the
// ExternalId value expected on the AWS side of the audit integration.
const AuditExternalIDPrefix = "clouddoctor-"

// AuditExternalID returns the full external id handed to the audit service,
// e.g. "clouddoctor-3f1b...".
func (u *User) AuditExternalID() string {
	return AuditExternalIDPrefix + u.ExternalID
}
