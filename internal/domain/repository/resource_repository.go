package repository

import (
	"context"

	"clouddoctor/internal/domain/entity"
)

// ResourceRepository defines read access to discovered cloud resources.
// Rows are produced by the audit pipeline; this backend never writes them.
type ResourceRepository interface {
	// FindAll retrieves every discovered resource, ordered by id.
	FindAll(ctx context.Context) ([]*entity.Resource, error)

	// FindByAccountIDs retrieves resources belonging to any of the given
	// account ids. An empty input yields an empty result.
	FindByAccountIDs(ctx context.Context, accountIDs []int64) ([]*entity.Resource, error)
}
