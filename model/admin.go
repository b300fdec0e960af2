package model

import (
	"fmt"
	"math/rand"
	"time"
)

// Admin roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin is an administrator account. role=admin accounts are bound to one
// institution; role=super_admin accounts are global and carry no
// institution reference.
type Admin struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"type:varchar(100);not null" json:"email"`
	MobileNumber  string     `gorm:"type:varchar(10);not null" json:"mobileNumber"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	Name          string     `gorm:"type:varchar(100)" json:"name"`
	Role          string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	InstitutionID *string    `gorm:"type:uuid;index" json:"institutionId"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	LastIP        string     `gorm:"type:varchar(45)" json:"-"`
	LastUserAgent string     `gorm:"type:varchar(255)" json:"-"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	IsDeleted     bool       `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Institution *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}

// ValidRole reports whether the role string is one of the closed admin roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// AnonymizeIdentity scrubs the email and mobile number of a soft-deleted
// admin so the live-uniqueness constraints release the values for reuse.
// The scrubbed values remain traceable in the row for audit.
func (a *Admin) AnonymizeIdentity(now time.Time) {
	a.Email = fmt.Sprintf("%s_deleted_%d", a.Email, now.UnixMilli())
	a.MobileNumber = fmt.Sprintf("99999%d", 10000+rand.Intn(90000))
}
