package model

import "time"

// Student belongs to one class; InstitutionID is derived from the class
// on every write and never taken from caller input.
type Student struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	ClassID       string    `gorm:"type:uuid;not null;index" json:"classId"`
	InstitutionID string    `gorm:"type:uuid;not null;index" json:"institutionId"`
	IsActive      bool      `gorm:"not null;default:true" json:"isActive"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Class       *Class       `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}
