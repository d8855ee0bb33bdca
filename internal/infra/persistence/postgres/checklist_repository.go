package postgres

import (
	"context"

	"clouddoctor/internal/domain/entity"
	domainerrors "clouddoctor/internal/domain/errors"
	"clouddoctor/internal/domain/repository"
	"clouddoctor/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// checklistRepository implements the repository.ChecklistRepository interface using GORM.
type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository is the constructor for checklistRepository.
func NewChecklistRepository(db *gorm.DB) repository.ChecklistRepository {
	return &checklistRepository{db: db}
}

// Create persists a new checklist result.
func (repo *checklistRepository) Create(ctx context.Context, result *entity.ChecklistResult) error {
	resultM := fromChecklistDomain(result)

	if err := repo.db.WithContext(ctx).Create(resultM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required checklist information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create checklist result")
	}

	// Update the entity with generated values
	result.ID = resultM.ID
	result.CreatedAt = resultM.CreatedAt
	result.UpdatedAt = resultM.UpdatedAt

	return nil
}

// FindByID retrieves a single checklist result by its id.
func (repo *checklistRepository) FindByID(ctx context.Context, id int64) (*entity.ChecklistResult, error) {
	var resultM model.ChecklistResultModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&resultM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChecklistNotFound
		}

		return nil, errors.Wrap(err, "failed to find checklist result by id")
	}

	return toChecklistDomain(&resultM), nil
}

// FindByUserID retrieves all checklist results owned by the given user.
func (repo *checklistRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.ChecklistResult, error) {
	var resultMs []model.ChecklistResultModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&resultMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list checklist results")
	}

	results := make([]*entity.ChecklistResult, 0, len(resultMs))
	for i := range resultMs {
		results = append(results, toChecklistDomain(&resultMs[i]))
	}

	return results, nil
}

// Update persists changes to an existing checklist result.
func (repo *checklistRepository) Update(ctx context.Context, result *entity.ChecklistResult) error {
	resultM := fromChecklistDomain(result)

	dbResult := repo.db.WithContext(ctx).
		Model(&model.ChecklistResultModel{}).
		Where("id = ?", resultM.ID).
		Updates(map[string]any{
			"result_name":     resultM.ResultName,
			"notes":           resultM.Notes,
			"is_completed":    resultM.IsCompleted,
			"completion_date": resultM.CompletionDate,
		})
	if dbResult.Error != nil {
		return domainerrors.NewDatabaseExecuteError(dbResult.Error, "failed to update checklist result")
	}
	if dbResult.RowsAffected == 0 {
		return repository.ErrChecklistNotFound
	}

	return nil
}
