package postgres

import (
	"context"

	"clouddoctor/internal/domain/entity"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// resourceRepository implements the repository.ResourceRepository interface using GORM.
type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository is the constructor for resourceRepository.
func NewResourceRepository(db *gorm.DB) repository.ResourceRepository {
	return &resourceRepository{db: db}
}

// FindAll retrieves every discovered resource, ordered by id.
func (repo *resourceRepository) FindAll(ctx context.Context) ([]*entity.Resource, error) {
	var resourceMs []model.ResourceModel
	if err := repo.db.WithContext(ctx).
		Order("id").
		Find(&resourceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list resources")
	}

	return toResourceDomains(resourceMs), nil
}

// FindByAccountIDs retrieves resources belonging to any of the given account ids.
func (repo *resourceRepository) FindByAccountIDs(ctx context.Context, accountIDs []int64) ([]*entity.Resource, error) {
	if len(accountIDs) == 0 {
		return []*entity.Resource{}, nil
	}

	var resourceMs []model.ResourceModel
	if err := repo.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Order("id").
		Find(&resourceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list resources by account")
	}

	return toResourceDomains(resourceMs), nil
}

func toResourceDomains(resourceMs []model.ResourceModel) []*entity.Resource {
	resources := make([]*entity.Resource, 0, len(resourceMs))
	for i := range resourceMs {
		resources = append(resources, toResourceDomain(&resourceMs[i]))
	}

	return resources
}
