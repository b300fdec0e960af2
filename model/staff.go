package model

import "time"

// StaffTypeOther is the default free-form role tag for staff members
const StaffTypeOther = "other"

// Staff is a non-student member of an institution (teacher, clerk, ...)
type Staff struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Email         string    `gorm:"type:varchar(100);not null" json:"email"`
	Type          string    `gorm:"type:varchar(50);not null;default:'other'" json:"type"`
	InstitutionID string    `gorm:"type:uuid;not null;index" json:"institutionId"`
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}
