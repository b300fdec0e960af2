package model

import "time"

// Department is a college-only subdivision of an institution
type Department struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	InstitutionID string    `gorm:"type:uuid;not null;index" json:"institutionId"`
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}
