package repository

import (
	"context"

	"clouddoctor/internal/domain/entity"
)

// CloudProviderRepository defines read access to the cloud provider catalog.
type CloudProviderRepository interface {
	// FindActive retrieves all providers currently marked active.
	FindActive(ctx context.Context) ([]*entity.CloudProvider, error)
}
