package model

import "time"

// ChecklistResultModel mirrors the 'user_checklist_results' table.
type ChecklistResultModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	UserID         int64  `gorm:"column:user_id;not null;index"`
	ResultName     string `gorm:"column:result_name;type:varchar(100);not null"`
	Notes          string `gorm:"type:text"`
	IsCompleted    bool   `gorm:"column:is_completed;default:false"`
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChecklistResultModel) TableName() string {
	return "user_checklist_results"
}
