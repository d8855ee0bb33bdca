package repository

import (
	"context"
	"errors"

	"clouddoctor/internal/domain/entity"
)

// ErrChecklistNotFound is a domain-specific error returned when a checklist result is not found.
var ErrChecklistNotFound = errors.New("checklist result not found")

// ChecklistRepository defines the operations for persisting user checklist results.
type ChecklistRepository interface {
	// Create persists a new checklist result and fills in generated fields.
	Create(ctx context.Context, result *entity.ChecklistResult) error

	// FindByID retrieves a single checklist result by its id.
	FindByID(ctx context.Context, id int64) (*entity.ChecklistResult, error)

	// FindByUserID retrieves all checklist results owned by the given user.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.ChecklistResult, error)

	// Update persists changes to an existing checklist result.
	Update(ctx context.Context, result *entity.ChecklistResult) error
}
