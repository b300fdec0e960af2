package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
)

// ClassService manages grade/section groupings. The department rule
// (college requires one, school forbids one) is re-checked on every
// create and update.
type ClassService struct {
	db *gorm.DB
}

// NewClassService creates a new class service
func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{db: db}
}

// ClassInput carries the caller-supplied fields for creating or
// updating a class.
type ClassInput struct {
	Grade         string
	Section       string
	InstitutionID string
	DepartmentID  *string
}

// ClassListParams extends the common list parameters with the
// institution and department scope filters.
type ClassListParams struct {
	ListParams
	InstitutionID string
	DepartmentID  string
}

// validatePlacement loads and checks the institution and optional
// department referenced by the input. Shared by Create and Update.
func (s *ClassService) validatePlacement(tx *gorm.DB, in ClassInput, internalMessage string) error {
	var inst model.Institution
	if err := tx.First(&inst, "id = ?", in.InstitutionID).Error; err != nil {
		return translateLoad(err, "Institution not found", internalMessage)
	}
	if inst.IsDeleted {
		return NotFound("Institution not found")
	}
	if err := ValidateClassScope(&inst, in.DepartmentID); err != nil {
		return err
	}
	if in.DepartmentID != nil && *in.DepartmentID != "" {
		var dept model.Department
		if err := tx.First(&dept, "id = ?", *in.DepartmentID).Error; err != nil {
			return translateLoad(err, "Department not found", internalMessage)
		}
		if dept.IsDeleted {
			return NotFound("Department not found")
		}
		if err := ValidateDepartmentOwnership(&dept, in.InstitutionID); err != nil {
			return err
		}
	}
	return nil
}

// conflictQuery scopes the grade/section uniqueness check to the
// institution and, when present, the department.
func (s *ClassService) conflictQuery(tx *gorm.DB, in ClassInput) *gorm.DB {
	q := tx.Model(&model.Class{}).
		Where("institution_id = ? AND grade ILIKE ? AND section ILIKE ? AND is_deleted = false",
			in.InstitutionID, in.Grade, in.Section)
	if in.DepartmentID != nil && *in.DepartmentID != "" {
		q = q.Where("department_id = ?", *in.DepartmentID)
	}
	return q
}

// Create validates placement and inserts a new class.
func (s *ClassService) Create(ctx context.Context, in ClassInput) (*model.Class, error) {
	if in.InstitutionID == "" {
		return nil, InvalidArgument("InstitutionId are required")
	}
	if err := validateClassReferences(in); err != nil {
		return nil, err
	}

	var class model.Class
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validatePlacement(tx, in, "Failed to create class"); err != nil {
			return err
		}

		var count int64
		if err := s.conflictQuery(tx, in).Count(&count).Error; err != nil {
			return Internal("Failed to create class", err)
		}
		if count > 0 {
			return Conflict("Class name already exists in this institution or department")
		}

		id, err := newID()
		if err != nil {
			return Internal("Failed to create class", err)
		}
		class = model.Class{
			ID:            id,
			Grade:         in.Grade,
			Section:       in.Section,
			InstitutionID: in.InstitutionID,
			DepartmentID:  in.DepartmentID,
			StudentIDs:    datatypes.NewJSONSlice([]string{}),
			TeacherIDs:    datatypes.NewJSONSlice([]string{}),
			IsActive:      true,
			IsDeleted:     false,
		}
		if err := tx.Create(&class).Error; err != nil {
			return translateDB(err, "Class name already exists in this institution or department", "Failed to create class")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// validateClassReferences checks the id formats of the institution and
// optional department references before they reach the database.
func validateClassReferences(in ClassInput) error {
	if !validID(in.InstitutionID) {
		return InvalidArgument("Invalid institutionId format")
	}
	if in.DepartmentID != nil && *in.DepartmentID != "" && !validID(*in.DepartmentID) {
		return InvalidArgument("Invalid departmentId format")
	}
	return nil
}

// GetByID returns a class; soft-deleted rows read as missing.
func (s *ClassService) GetByID(ctx context.Context, id string) (*model.Class, error) {
	if !validID(id) {
		return nil, NotFound("Class not found")
	}

	var class model.Class
	if err := s.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Class not found")
		}
		return nil, Internal("Failed to retrieve class", err)
	}
	if class.IsDeleted {
		return nil, NotFound("Class not found")
	}
	return &class, nil
}

// List returns non-deleted classes scoped by the optional institution
// and department filters; search matches the section field.
func (s *ClassService) List(ctx context.Context, params ClassListParams) ([]model.Class, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	q := s.db.WithContext(ctx).Model(&model.Class{}).Where("is_deleted = false")
	if params.InstitutionID != "" {
		q = q.Where("institution_id = ?", params.InstitutionID)
	}
	if params.DepartmentID != "" {
		q = q.Where("department_id = ?", params.DepartmentID)
	}
	if params.Search != "" {
		q = q.Where("section ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve classes", err)
	}

	var items []model.Class
	if err := q.Order("section ASC").Limit(params.Limit).Offset(params.Offset()).Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve classes", err)
	}
	return items, total, nil
}

// Update validates placement against the (possibly new) institution and
// rewrites the class.
func (s *ClassService) Update(ctx context.Context, id string, in ClassInput) (*model.Class, error) {
	if !validID(id) {
		return nil, NotFound("Class not found")
	}
	if in.InstitutionID == "" {
		return nil, InvalidArgument("Name and institutionId are required")
	}
	if err := validateClassReferences(in); err != nil {
		return nil, err
	}

	var class model.Class
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&class, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Class not found", "Failed to update class")
		}
		if class.IsDeleted {
			return NotFound("Class not found")
		}

		if err := s.validatePlacement(tx, in, "Failed to update class"); err != nil {
			return err
		}

		var count int64
		if err := s.conflictQuery(tx, in).Where("id <> ?", id).Count(&count).Error; err != nil {
			return Internal("Failed to update class", err)
		}
		if count > 0 {
			return Conflict("Class name already exists in this institution or department")
		}

		class.Grade = in.Grade
		class.Section = in.Section
		class.InstitutionID = in.InstitutionID
		class.DepartmentID = in.DepartmentID
		if err := tx.Save(&class).Error; err != nil {
			return translateDB(err, "Class name already exists in this institution or department", "Failed to update class")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *ClassService) ToggleActive(ctx context.Context, id string) (*model.Class, error) {
	if !validID(id) {
		return nil, NotFound("Class not found")
	}

	var class model.Class
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&class, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Class not found", "Failed to update class status")
		}
		class.IsActive = !class.IsActive
		if err := tx.Save(&class).Error; err != nil {
			return Internal("Failed to update class status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// SoftDelete marks a class deleted.
func (s *ClassService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Class not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var class model.Class
		if err := tx.First(&class, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Class not found", "Failed to delete class")
		}
		if class.IsDeleted {
			return NotFound("Class not found")
		}
		class.IsDeleted = true
		class.IsActive = false
		if err := tx.Save(&class).Error; err != nil {
			return Internal("Failed to delete class", err)
		}
		return nil
	})
}
