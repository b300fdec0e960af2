package model

import (
	"time"

	"gorm.io/datatypes"
)

// Institution types
const (
	InstitutionTypeSchool  = "school"
	InstitutionTypeCollege = "college"
)

// ContactDetails holds the contact information embedded in an institution row
type ContactDetails struct {
	InchargePerson string `json:"inchargePerson"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email,omitempty"`
	OfficePhone    string `json:"officePhone,omitempty"`
}

// Institution represents a school or college tenant, the root of the hierarchy
type Institution struct {
	ID             string                             `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                             `gorm:"type:varchar(100);not null" json:"name"`
	Type           string                             `gorm:"type:varchar(20);not null" json:"type"` // school, college
	Address        string                             `gorm:"type:varchar(255);not null" json:"address"`
	ContactDetails datatypes.JSONType[ContactDetails] `gorm:"type:jsonb" json:"contactDetails"`
	AdminIDs       datatypes.JSONSlice[string]        `gorm:"type:jsonb" json:"adminIds"`
	StaffIDs       datatypes.JSONSlice[string]        `gorm:"type:jsonb" json:"staffIds"`
	IsActive       bool                               `gorm:"not null;default:true" json:"isActive"`
	IsDeleted      bool                               `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt      time.Time                          `json:"createdAt"`
	UpdatedAt      time.Time                          `json:"updatedAt"`
}

// IsCollege reports whether the institution carries departments
func (i *Institution) IsCollege() bool {
	return i.Type == InstitutionTypeCollege
}
