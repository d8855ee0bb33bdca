package entity

import "time"

// ChecklistResult is a user's saved security-checklist run. The individual
// answers are stored as a serialized JSON document in Notes; the backend
// treats them as opaque.
type ChecklistResult struct {
	ID             int64      // Database-generated identifier.
	UserID         int64      // Owning user; ownership is enforced on reads and updates.
	ResultName     string     // User-chosen name for this checklist run.
	Notes          string     // JSON document with the checklist answers.
	IsCompleted    bool       // Whether the run was completed.
	CompletionDate *time.Time // Set when the run is completed.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
