package impl

import (
	"context"
	"log/slog"

	deliverycontext "clouddoctor/internal/delivery/context"
	"clouddoctor/internal/domain/entity"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	userRepo     repository.UserRepository
	providerRepo repository.CloudProviderRepository
	resourceRepo repository.ResourceRepository
	logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	userRepo repository.UserRepository,
	providerRepo repository.CloudProviderRepository,
	resourceRepo repository.ResourceRepository,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every account, sanitized.
func (srv *catalogService) ListUsers(ctx context.Context) ([]*usecase.UserInfo, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users")
	}

	infos := make([]*usecase.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, usecase.NewUserInfo(user))
	}

	return infos, nil
}

// ListProviders returns the cloud providers currently marked active.
func (srv *catalogService) ListProviders(ctx context.Context) ([]*entity.CloudProvider, error) {
	providers, err := srv.providerRepo.FindActive(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list providers", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list providers")
	}

	return providers, nil
}

// ListResources returns every discovered resource.
func (srv *catalogService) ListResources(ctx context.Context) ([]*entity.Resource, error) {
	resources, err := srv.resourceRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list resources", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list resources")
	}

	return resources, nil
}

// ListResourcesByUser returns the resources tied to the given account id. An
// unknown id yields an empty list so the dashboard can render it as-is.
func (srv *catalogService) ListResourcesByUser(ctx context.Context, userID int64) ([]*entity.Resource, error) {
	_, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return []*entity.Resource{}, nil
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	resources, err := srv.resourceRepo.FindByAccountIDs(ctx, []int64{userID})
	if err != nil {
		srv.log(ctx).Error("Failed to list resources by user", slog.Any("error", err), slog.Int64("user_id", userID))

		return nil, errors.Wrap(err, "failed to list resources by user")
	}

	return resources, nil
}
