package usecase

import (
	"context"

	"clouddoctor/internal/domain/entity"
)

// CatalogUsecase exposes the read-only listings backing the dashboard:
// accounts, cloud providers and discovered resources.
type CatalogUsecase interface {
	// ListUsers returns every account, sanitized.
	ListUsers(ctx context.Context) ([]*UserInfo, error)

	// ListProviders returns the cloud providers currently marked active.
	ListProviders(ctx context.Context) ([]*entity.CloudProvider, error)

	// ListResources returns every discovered resource.
	ListResources(ctx context.Context) ([]*entity.Resource, error)

	// ListResourcesByUser returns the resources tied to the given account id.
	// An unknown id yields an empty list, not an error.
	ListResourcesByUser(ctx context.Context, userID int64) ([]*entity.Resource, error)
}
