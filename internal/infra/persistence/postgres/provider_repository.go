package postgres

import (
	"context"

	"clouddoctor/internal/domain/entity"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// providerRepository implements the repository.CloudProviderRepository interface using GORM.
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository is the constructor for providerRepository.
func NewProviderRepository(db *gorm.DB) repository.CloudProviderRepository {
	return &providerRepository{db: db}
}

// FindActive retrieves all providers currently marked active.
func (repo *providerRepository) FindActive(ctx context.Context) ([]*entity.CloudProvider, error) {
	var providerMs []model.CloudProviderModel
	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&providerMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active providers")
	}

	providers := make([]*entity.CloudProvider, 0, len(providerMs))
	for i := range providerMs {
		providers = append(providers, toProviderDomain(&providerMs[i]))
	}

	return providers, nil
}
