package model

// CloudProviderModel mirrors the 'cloud_providers' table.
type CloudProviderModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(50);not null"`
	DisplayName string `gorm:"column:display_name;type:varchar(100);not null"`
	IconURL     string `gorm:"column:icon_url;type:varchar(255)"`
	IsActive    bool   `gorm:"column:is_active;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (CloudProviderModel) TableName() string {
	return "cloud_providers"
}
