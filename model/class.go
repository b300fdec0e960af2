package model

import (
	"time"

	"gorm.io/datatypes"
)

// Class is a grade/section grouping scoped to an institution and, for
// colleges, a department
type Class struct {
	ID            string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Grade         string                      `gorm:"type:varchar(50);not null" json:"grade"`
	Section       string                      `gorm:"type:varchar(50);not null" json:"section"`
	InstitutionID string                      `gorm:"type:uuid;not null;index" json:"institutionId"`
	DepartmentID  *string                     `gorm:"type:uuid;index" json:"departmentId"`
	StudentIDs    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"studentIds"`
	TeacherIDs    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"teacherIds"`
	IsActive      bool                        `gorm:"not null;default:true" json:"isActive"`
	IsDeleted     bool                        `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`

	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Department  *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}
