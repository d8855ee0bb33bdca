package usecase

import (
	"context"
	"encoding/json"
	"time"

	"clouddoctor/internal/domain/entity"
)

// UserInfo is the sanitized projection of a user account. It never carries
// the password hash.
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	FullName   string    `json:"fullName"`
	ExternalID string    `json:"externalId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewUserInfo maps a domain user onto its sanitized projection.
func NewUserInfo(user *entity.User) *UserInfo {
	return &UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role.String(),
		FullName:   user.FullName,
		ExternalID: user.ExternalID,
		CreatedAt:  user.CreatedAt,
	}
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// StartAuditInput defines the data forwarded to the audit engine. The
// ExternalID must match the one derived from the caller's account.
type StartAuditInput struct {
	AccountID  string
	RoleName   string
	ExternalID string
	Checks     []string
}

// SaveChecklistInput defines the data for creating or updating a checklist
// result. Answers is stored verbatim as a JSON document.
type SaveChecklistInput struct {
	ResultName string
	Answers    map[string]any
}

// UserUsecase covers the operations a logged-in user performs on their own
// account: profile reads, password rotation, audit kick-off and checklist
// bookkeeping.
type UserUsecase interface {
	// GetMyInfo returns the caller's sanitized account record.
	GetMyInfo(ctx context.Context, username string) (*UserInfo, error)

	// GetMyExternalID returns the caller's audit external id, prefix included.
	GetMyExternalID(ctx context.Context, username string) (string, error)

	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, username string, input *ChangePasswordInput) error

	// StartAudit forwards an audit request to the audit engine after checking
	// that the supplied external id belongs to the caller. The engine's raw
	// JSON response is returned untouched.
	StartAudit(ctx context.Context, username string, input *StartAuditInput) (json.RawMessage, error)

	// SaveChecklist records a completed checklist for the caller.
	SaveChecklist(ctx context.Context, username string, input *SaveChecklistInput) (*entity.ChecklistResult, error)

	// GetMyChecklists lists the caller's checklist results, newest first.
	GetMyChecklists(ctx context.Context, username string) ([]*entity.ChecklistResult, error)

	// GetChecklist returns a single checklist result owned by the caller.
	GetChecklist(ctx context.Context, username string, id int64) (*entity.ChecklistResult, error)

	// UpdateChecklist overwrites a checklist result owned by the caller.
	UpdateChecklist(ctx context.Context, username string, id int64, input *SaveChecklistInput) (*entity.ChecklistResult, error)
}
