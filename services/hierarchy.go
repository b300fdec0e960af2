package services

import (
	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/validation"
)

// Field limits mirror the column sizes in model.
const (
	maxNameLength       = 100
	maxAddressLength    = 255
	maxAdminNameLength  = 45
	maxAdminEmailLength = 45
	maxStaffEmailLength = 100
)

// InstitutionInput carries the caller-supplied fields for creating or
// updating an institution.
type InstitutionInput struct {
	Name           string
	Type           string
	Address        string
	ContactDetails model.ContactDetails
}

// ValidateInstitutionInput checks required fields, lengths, type and
// contact formats in that order.
func ValidateInstitutionInput(v *validation.Validator, in InstitutionInput) error {
	if in.Name == "" || in.Type == "" || in.Address == "" ||
		in.ContactDetails.InchargePerson == "" || in.ContactDetails.MobileNumber == "" {
		return InvalidArgument("Name, type, address, incharge person, and mobile number are required")
	}
	if len(in.Name) > maxNameLength {
		return InvalidArgument("Name must be 100 characters or less")
	}
	if len(in.Address) > maxAddressLength {
		return InvalidArgument("Address must be 255 characters or less")
	}
	if in.Type != model.InstitutionTypeCollege && in.Type != model.InstitutionTypeSchool {
		return InvalidArgument("Type must be 'college' or 'school'")
	}
	if in.ContactDetails.Email != "" && !v.Email(in.ContactDetails.Email) {
		return InvalidArgument("Invalid email format")
	}
	if !v.Mobile(in.ContactDetails.MobileNumber) {
		return InvalidArgument("Mobile number must be a 10-digit number")
	}
	return nil
}

// ValidateDepartmentInput checks the caller-supplied department fields.
func ValidateDepartmentInput(name, institutionID string) error {
	if name == "" || institutionID == "" {
		return InvalidArgument("Name and institutionId are required")
	}
	if len(name) > maxNameLength {
		return InvalidArgument("Name must be 100 characters or less")
	}
	if !validID(institutionID) {
		return InvalidArgument("Invalid institutionId format")
	}
	return nil
}

// ValidateDepartmentParent rejects departments under schools. Only
// colleges are subdivided.
func ValidateDepartmentParent(inst *model.Institution) error {
	if !inst.IsCollege() {
		return InvalidArgument("Departments can only be created for colleges")
	}
	return nil
}

// ValidateClassScope enforces the department rule for the institution
// type: colleges require a departmentId, schools forbid one.
func ValidateClassScope(inst *model.Institution, departmentID *string) error {
	hasDept := departmentID != nil && *departmentID != ""
	if inst.IsCollege() && !hasDept {
		return InvalidArgument("departmentId is required for colleges")
	}
	if !inst.IsCollege() && hasDept {
		return InvalidArgument("departmentId should not be provided for schools")
	}
	return nil
}

// ValidateDepartmentOwnership rejects a department that belongs to a
// different institution than the one the class is being placed in.
func ValidateDepartmentOwnership(dept *model.Department, institutionID string) error {
	if dept.InstitutionID != institutionID {
		return InvalidArgument("Department does not belong to the specified institution")
	}
	return nil
}

// AdminInput carries the caller-supplied fields for registering or
// updating an admin account.
type AdminInput struct {
	Email         string
	MobileNumber  string
	Password      string
	Name          string
	Role          string
	InstitutionID *string
}

// ValidateAdminInput checks required fields, lengths, formats, role and
// role/institution coupling in that order.
func ValidateAdminInput(v *validation.Validator, in AdminInput) error {
	if in.Email == "" || in.MobileNumber == "" || in.Password == "" || in.Name == "" || in.Role == "" {
		return InvalidArgument("Email, mobile number, password, name, and role are required")
	}
	if len(in.Email) > maxAdminEmailLength {
		return InvalidArgument("Email must be 45 characters or less")
	}
	if !v.Email(in.Email) {
		return InvalidArgument("Invalid email format")
	}
	if len(in.Name) > maxAdminNameLength {
		return InvalidArgument("Name must be 45 characters or less")
	}
	if !v.Mobile(in.MobileNumber) {
		return InvalidArgument("Mobile number must be a 10-digit number")
	}
	if !auth.IsPasswordValid(in.Password) {
		return InvalidArgument("Password must be at least 8 characters long")
	}
	if !model.ValidRole(in.Role) {
		return InvalidArgument("Invalid role. Must be 'super_admin' or 'admin'")
	}
	if err := ValidateRoleScope(in.Role, in.InstitutionID); err != nil {
		return err
	}
	if in.InstitutionID != nil && *in.InstitutionID != "" && !v.UUID(*in.InstitutionID) {
		return InvalidArgument("Invalid institutionId format")
	}
	return nil
}

// ValidateRoleScope enforces the role/institution coupling: admins are
// bound to exactly one institution, super admins to none.
func ValidateRoleScope(role string, institutionID *string) error {
	hasInstitution := institutionID != nil && *institutionID != ""
	if role == model.RoleAdmin && !hasInstitution {
		return InvalidArgument("Institution ID is required for admin role")
	}
	if role == model.RoleSuperAdmin && hasInstitution {
		return InvalidArgument("Institution ID must be null for super_admin role")
	}
	return nil
}
