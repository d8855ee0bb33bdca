package postgres

import (
	"clouddoctor/internal/domain/entity"
	"clouddoctor/internal/infra/persistence/model"
)

// Mapping helpers between persistence models and pure domain entities.
// Repositories never leak GORM models across the domain boundary.

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		Role:         entity.Role(m.Role),
		FullName:     m.FullName,
		ExternalID:   m.ExternalID,
		CreatedAt:    m.CreatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:         u.ID,
		Username:   u.Username,
		Password:   u.PasswordHash,
		Role:       u.Role.String(),
		FullName:   u.FullName,
		ExternalID: u.ExternalID,
		CreatedAt:  u.CreatedAt,
	}
}

func toProviderDomain(m *model.CloudProviderModel) *entity.CloudProvider {
	return &entity.CloudProvider{
		ID:          m.ID,
		Name:        m.Name,
		DisplayName: m.DisplayName,
		IconURL:     m.IconURL,
		IsActive:    m.IsActive,
	}
}

func toResourceDomain(m *model.ResourceModel) *entity.Resource {
	return &entity.Resource{
		ID:           m.ID,
		AccountID:    m.AccountID,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		ResourceName: m.ResourceName,
		Status:       m.Status,
		CostPerHour:  m.CostPerHour,
		LastScanned:  m.LastScanned,
		CreatedAt:    m.CreatedAt,
	}
}

func toChecklistDomain(m *model.ChecklistResultModel) *entity.ChecklistResult {
	return &entity.ChecklistResult{
		ID:             m.ID,
		UserID:         m.UserID,
		ResultName:     m.ResultName,
		Notes:          m.Notes,
		IsCompleted:    m.IsCompleted,
		CompletionDate: m.CompletionDate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromChecklistDomain(r *entity.ChecklistResult) *model.ChecklistResultModel {
	return &model.ChecklistResultModel{
		ID:             r.ID,
		UserID:         r.UserID,
		ResultName:     r.ResultName,
		Notes:          r.Notes,
		IsCompleted:    r.IsCompleted,
		CompletionDate: r.CompletionDate,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
