package model

import "time"

// ResourceModel mirrors the 'resources' table, written by the audit pipeline.
type ResourceModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	AccountID    int64   `gorm:"column:account_id;not null"`
	ResourceType string  `gorm:"column:resource_type;type:varchar(50);not null"`
	ResourceID   string  `gorm:"column:resource_id;type:varchar(255);not null"`
	ResourceName string  `gorm:"column:resource_name;type:varchar(255)"`
	Status       string  `gorm:"type:varchar(50)"`
	CostPerHour  float64 `gorm:"column:cost_per_hour;type:numeric(10,4)"`
	LastScanned  time.Time
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ResourceModel) TableName() string {
	return "resources"
}
