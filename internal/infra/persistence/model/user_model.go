// Package model contains the GORM persistence models. They mirror the
// database schema and are mapped to and from pure domain entities at the
// repository boundary.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Username   string `gorm:"type:varchar(50);unique;not null"`
	Password   string `gorm:"type:varchar(255);not null"`
	Role       string `gorm:"type:varchar(20);not null;default:USER"`
	FullName   string `gorm:"type:varchar(100)"`
	ExternalID string `gorm:"column:external_id;type:varchar(64)"`
	CreatedAt  time.Time

	ChecklistResults []ChecklistResultModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
