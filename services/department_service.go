package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/validation"
)

// DepartmentService manages college subdivisions. Every write
// re-checks that the parent institution is a college.
type DepartmentService struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewDepartmentService creates a new department service
func NewDepartmentService(db *gorm.DB, v *validation.Validator) *DepartmentService {
	return &DepartmentService{db: db, validator: v}
}

// DepartmentListParams extends the common list parameters with the
// institution scope filter.
type DepartmentListParams struct {
	ListParams
	InstitutionID string
}

// Create validates the parent institution and inserts a new department.
func (s *DepartmentService) Create(ctx context.Context, name, institutionID string) (*model.Department, error) {
	if err := ValidateDepartmentInput(name, institutionID); err != nil {
		return nil, err
	}

	var dept model.Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inst model.Institution
		if err := tx.First(&inst, "id = ?", institutionID).Error; err != nil {
			return translateLoad(err, "Institution not found", "Failed to create department")
		}
		if inst.IsDeleted {
			return NotFound("Institution not found")
		}
		if err := ValidateDepartmentParent(&inst); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Department{}).
			Where("institution_id = ? AND name = ? AND is_deleted = false", institutionID, name).
			Count(&count).Error; err != nil {
			return Internal("Failed to create department", err)
		}
		if count > 0 {
			return Conflict("Department name already exists in this institution")
		}

		id, err := newID()
		if err != nil {
			return Internal("Failed to create department", err)
		}
		dept = model.Department{
			ID:            id,
			Name:          name,
			InstitutionID: institutionID,
			IsActive:      true,
			IsDeleted:     false,
		}
		if err := tx.Create(&dept).Error; err != nil {
			return translateDB(err, "Department name already exists in this institution", "Failed to create department")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// GetByID returns a department; soft-deleted rows read as missing.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*model.Department, error) {
	if !validID(id) {
		return nil, NotFound("Department not found")
	}

	var dept model.Department
	if err := s.db.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Department not found")
		}
		return nil, Internal("Failed to retrieve department", err)
	}
	if dept.IsDeleted {
		return nil, NotFound("Department not found")
	}
	return &dept, nil
}

// List returns non-deleted departments, optionally scoped to one
// institution and filtered by a name search term.
func (s *DepartmentService) List(ctx context.Context, params DepartmentListParams) ([]model.Department, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}
	if params.InstitutionID != "" && !s.validator.UUID(params.InstitutionID) {
		return nil, 0, InvalidArgument("Invalid institutionId format")
	}

	q := s.db.WithContext(ctx).Model(&model.Department{}).Where("is_deleted = false")
	if params.InstitutionID != "" {
		q = q.Where("institution_id = ?", params.InstitutionID)
	}
	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve departments", err)
	}

	var items []model.Department
	if err := q.Order("name ASC").Limit(params.Limit).Offset(params.Offset()).Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve departments", err)
	}
	return items, total, nil
}

// Update validates and rewrites an existing department, re-checking the
// college rule against the (possibly new) institution.
func (s *DepartmentService) Update(ctx context.Context, id, name, institutionID string) (*model.Department, error) {
	if !validID(id) {
		return nil, NotFound("Department not found")
	}
	if err := ValidateDepartmentInput(name, institutionID); err != nil {
		return nil, err
	}

	var dept model.Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dept, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Department not found", "Failed to update department")
		}
		if dept.IsDeleted {
			return NotFound("Department not found")
		}

		var inst model.Institution
		if err := tx.First(&inst, "id = ?", institutionID).Error; err != nil {
			return translateLoad(err, "Institution not found", "Failed to update department")
		}
		if inst.IsDeleted {
			return NotFound("Institution not found")
		}
		if !inst.IsCollege() {
			return InvalidArgument("Departments can only belong to colleges")
		}

		var count int64
		if err := tx.Model(&model.Department{}).
			Where("institution_id = ? AND name = ? AND is_deleted = false AND id <> ?", institutionID, name, id).
			Count(&count).Error; err != nil {
			return Internal("Failed to update department", err)
		}
		if count > 0 {
			return Conflict("Department name already exists in this institution")
		}

		dept.Name = name
		dept.InstitutionID = institutionID
		if err := tx.Save(&dept).Error; err != nil {
			return translateDB(err, "Department name already exists in this institution", "Failed to update department")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *DepartmentService) ToggleActive(ctx context.Context, id string) (*model.Department, error) {
	if !validID(id) {
		return nil, NotFound("Department not found")
	}

	var dept model.Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dept, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Department not found", "Failed to update department status")
		}
		dept.IsActive = !dept.IsActive
		if err := tx.Save(&dept).Error; err != nil {
			return Internal("Failed to update department status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// SoftDelete marks a department deleted.
func (s *DepartmentService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Department not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dept model.Department
		if err := tx.First(&dept, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Department not found", "Failed to delete department")
		}
		if dept.IsDeleted {
			return NotFound("Department not found")
		}
		dept.IsDeleted = true
		dept.IsActive = false
		if err := tx.Save(&dept).Error; err != nil {
			return Internal("Failed to delete department", err)
		}
		return nil
	})
}
