package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/validation"
)

// StaffService manages staff rows and keeps the owning institution's
// embedded staff id list in step with them.
type StaffService struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewStaffService creates a new staff service
func NewStaffService(db *gorm.DB, v *validation.Validator) *StaffService {
	return &StaffService{db: db, validator: v}
}

// StaffInput carries the caller-supplied fields for updating a staff
// member. Empty fields are left unchanged.
type StaffInput struct {
	Name          string
	Email         string
	Type          string
	InstitutionID string
	IsActive      *bool
}

// StaffListParams extends the common list parameters with the
// institution scope filter.
type StaffListParams struct {
	ListParams
	InstitutionID string
}

// Create inserts a new staff member and appends its id to the owning
// institution's staff list in the same transaction.
func (s *StaffService) Create(ctx context.Context, name, email, staffType, institutionID string) (*model.Staff, error) {
	if name == "" || email == "" || staffType == "" || institutionID == "" {
		return nil, InvalidArgument("Missing required fields")
	}
	if len(name) > maxNameLength {
		return nil, InvalidArgument("Name must be 100 characters or less")
	}
	if len(email) > maxStaffEmailLength {
		return nil, InvalidArgument("Email must be 100 characters or less")
	}
	if !s.validator.Email(email) {
		return nil, InvalidArgument("Invalid email format")
	}
	if !validID(institutionID) {
		return nil, InvalidArgument("Invalid institutionId format")
	}

	var staff model.Staff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inst model.Institution
		if err := tx.First(&inst, "id = ?", institutionID).Error; err != nil {
			return translateLoad(err, "Institution does not exist", "Failed to create staff")
		}
		if inst.IsDeleted {
			return NotFound("Institution does not exist")
		}

		id, err := newID()
		if err != nil {
			return Internal("Failed to create staff", err)
		}
		staff = model.Staff{
			ID:            id,
			Name:          name,
			Email:         email,
			Type:          staffType,
			InstitutionID: institutionID,
			IsActive:      true,
			IsDeleted:     false,
		}
		if err := tx.Create(&staff).Error; err != nil {
			return translateDB(err, "Email already exists", "Failed to create staff")
		}

		inst.StaffIDs = append(inst.StaffIDs, id)
		if err := tx.Model(&inst).Update("staff_ids", inst.StaffIDs).Error; err != nil {
			return Internal("Failed to create staff", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// GetByID returns a staff member; soft-deleted rows read as missing.
func (s *StaffService) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	if !validID(id) {
		return nil, NotFound("Staff not found")
	}

	var staff model.Staff
	if err := s.db.WithContext(ctx).First(&staff, "id = ? AND is_deleted = false", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Staff not found")
		}
		return nil, Internal("Failed to fetch staff", err)
	}
	return &staff, nil
}

// List returns non-deleted staff, optionally scoped to one institution
// and filtered by a name search term.
func (s *StaffService) List(ctx context.Context, params StaffListParams) ([]model.Staff, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	q := s.db.WithContext(ctx).Model(&model.Staff{}).Where("is_deleted = false")
	if params.InstitutionID != "" {
		q = q.Where("institution_id = ?", params.InstitutionID)
	}
	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve staffs", err)
	}

	var items []model.Staff
	if err := q.Order("name ASC").Limit(params.Limit).Offset(params.Offset()).Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve staffs", err)
	}
	return items, total, nil
}

// Update writes only the fields the caller supplied.
func (s *StaffService) Update(ctx context.Context, id string, in StaffInput) (*model.Staff, error) {
	if !validID(id) {
		return nil, NotFound("Staff not found")
	}
	if in.Name != "" && len(in.Name) > maxNameLength {
		return nil, InvalidArgument("Name must be 100 characters or less")
	}
	if in.Email != "" && len(in.Email) > maxStaffEmailLength {
		return nil, InvalidArgument("Email must be 100 characters or less")
	}
	if in.Email != "" && !s.validator.Email(in.Email) {
		return nil, InvalidArgument("Invalid email format")
	}
	if in.InstitutionID != "" && !validID(in.InstitutionID) {
		return nil, InvalidArgument("Invalid institutionId format")
	}

	var staff model.Staff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&staff, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Staff not found", "Failed to update staff")
		}

		if in.Name != "" {
			staff.Name = in.Name
		}
		if in.Email != "" {
			staff.Email = in.Email
		}
		if in.Type != "" {
			staff.Type = in.Type
		}
		if in.InstitutionID != "" {
			staff.InstitutionID = in.InstitutionID
		}
		if in.IsActive != nil {
			staff.IsActive = *in.IsActive
		}
		if err := tx.Save(&staff).Error; err != nil {
			return translateDB(err, "Email already exists", "Failed to update staff")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *StaffService) ToggleActive(ctx context.Context, id string) (*model.Staff, error) {
	if !validID(id) {
		return nil, NotFound("Staff not found")
	}

	var staff model.Staff
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&staff, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Staff not found", "Failed to toggle staff status")
		}
		staff.IsActive = !staff.IsActive
		if err := tx.Save(&staff).Error; err != nil {
			return Internal("Failed to toggle staff status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

// SoftDelete marks a staff member deleted.
func (s *StaffService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Staff not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff model.Staff
		if err := tx.First(&staff, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Staff not found", "Failed to delete staff")
		}
		staff.IsDeleted = true
		staff.IsActive = false
		if err := tx.Save(&staff).Error; err != nil {
			return Internal("Failed to delete staff", err)
		}
		return nil
	})
}
