package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/creoleap/api/model"
)

// StudentService manages student rows. InstitutionID is always derived
// from the class row, never taken from the caller, so the denormalized
// copy can never drift.
type StudentService struct {
	db *gorm.DB
}

// NewStudentService creates a new student service
func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// StudentListParams extends the common list parameters with the class
// and institution scope filters.
type StudentListParams struct {
	ListParams
	ClassID       string
	InstitutionID string
}

// loadClass returns the referenced class or NotFound when it is missing
// or soft-deleted.
func (s *StudentService) loadClass(tx *gorm.DB, classID, internalMessage string) (*model.Class, error) {
	var class model.Class
	if err := tx.First(&class, "id = ?", classID).Error; err != nil {
		return nil, translateLoad(err, "Class not found", internalMessage)
	}
	if class.IsDeleted {
		return nil, NotFound("Class not found")
	}
	return &class, nil
}

// Create inserts a new student under the given class.
func (s *StudentService) Create(ctx context.Context, name, classID string) (*model.Student, error) {
	if name == "" || classID == "" {
		return nil, InvalidArgument("Name and classId are required")
	}
	if !validID(classID) {
		return nil, InvalidArgument("Invalid classId format")
	}

	var student model.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		class, err := s.loadClass(tx, classID, "Failed to create student")
		if err != nil {
			return err
		}

		id, err2 := newID()
		if err2 != nil {
			return Internal("Failed to create student", err2)
		}
		student = model.Student{
			ID:            id,
			Name:          name,
			ClassID:       classID,
			InstitutionID: class.InstitutionID,
			IsActive:      true,
			IsDeleted:     false,
		}
		if err := tx.Create(&student).Error; err != nil {
			return Internal("Failed to create student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByID returns a student; soft-deleted rows read as missing.
func (s *StudentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	if !validID(id) {
		return nil, NotFound("Student not found")
	}

	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Student not found")
		}
		return nil, Internal("Failed to retrieve student", err)
	}
	if student.IsDeleted {
		return nil, NotFound("Student not found")
	}
	return &student, nil
}

// List returns non-deleted students with their class and institution
// rows preloaded for display.
func (s *StudentService) List(ctx context.Context, params StudentListParams) ([]model.Student, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	q := s.db.WithContext(ctx).Model(&model.Student{}).Where("is_deleted = false")
	if params.InstitutionID != "" {
		q = q.Where("institution_id = ?", params.InstitutionID)
	}
	if params.ClassID != "" {
		q = q.Where("class_id = ?", params.ClassID)
	}
	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve students", err)
	}

	var items []model.Student
	if err := q.Preload("Class").Preload("Institution").
		Order("name ASC").Limit(params.Limit).Offset(params.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve students", err)
	}
	return items, total, nil
}

// Update rewrites a student; the institution reference is re-derived
// from the (possibly new) class.
func (s *StudentService) Update(ctx context.Context, id, name, classID string) (*model.Student, error) {
	if !validID(id) {
		return nil, NotFound("Student not found")
	}
	if name == "" || classID == "" {
		return nil, InvalidArgument("Name and classId are required")
	}
	if !validID(classID) {
		return nil, InvalidArgument("Invalid classId format")
	}

	var student model.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		class, err := s.loadClass(tx, classID, "Failed to update student")
		if err != nil {
			return err
		}

		if err := tx.First(&student, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Student not found", "Failed to update student")
		}
		if student.IsDeleted {
			return NotFound("Student not found")
		}

		student.Name = name
		student.ClassID = classID
		student.InstitutionID = class.InstitutionID
		if err := tx.Save(&student).Error; err != nil {
			return Internal("Failed to update student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *StudentService) ToggleActive(ctx context.Context, id string) (*model.Student, error) {
	if !validID(id) {
		return nil, NotFound("Student not found")
	}

	var student model.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Student not found", "Failed to update student status")
		}
		student.IsActive = !student.IsActive
		if err := tx.Save(&student).Error; err != nil {
			return Internal("Failed to update student status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// SoftDelete marks a student deleted.
func (s *StudentService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Student not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.First(&student, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Student not found", "Failed to delete student")
		}
		if student.IsDeleted {
			return NotFound("Student not found")
		}
		student.IsDeleted = true
		student.IsActive = false
		if err := tx.Save(&student).Error; err != nil {
			return Internal("Failed to delete student", err)
		}
		return nil
	})
}
