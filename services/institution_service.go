package services

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/validation"
)

// InstitutionService manages the lifecycle of institution rows, the
// roots of the entity hierarchy.
type InstitutionService struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewInstitutionService creates a new institution service
func NewInstitutionService(db *gorm.DB, v *validation.Validator) *InstitutionService {
	return &InstitutionService{db: db, validator: v}
}

// Create validates and inserts a new institution. The name pre-check is
// an optimization; the partial unique index is the final arbiter.
func (s *InstitutionService) Create(ctx context.Context, in InstitutionInput) (*model.Institution, error) {
	if err := ValidateInstitutionInput(s.validator, in); err != nil {
		return nil, err
	}

	var inst model.Institution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Institution{}).
			Where("name = ? AND is_deleted = false", in.Name).
			Count(&count).Error; err != nil {
			return Internal("Failed to create institution", err)
		}
		if count > 0 {
			return Conflict("Institution name already exists")
		}

		id, err := newID()
		if err != nil {
			return Internal("Failed to create institution", err)
		}

		inst = model.Institution{
			ID:             id,
			Name:           in.Name,
			Type:           in.Type,
			Address:        in.Address,
			ContactDetails: datatypes.NewJSONType(in.ContactDetails),
			AdminIDs:       datatypes.NewJSONSlice([]string{}),
			StaffIDs:       datatypes.NewJSONSlice([]string{}),
			IsActive:       true,
			IsDeleted:      false,
		}
		if err := tx.Create(&inst).Error; err != nil {
			return translateDB(err, "Institution name already exists", "Failed to create institution")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetByID returns an institution; soft-deleted rows read as missing.
func (s *InstitutionService) GetByID(ctx context.Context, id string) (*model.Institution, error) {
	if !validID(id) {
		return nil, NotFound("Institution not found")
	}

	var inst model.Institution
	if err := s.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Institution not found")
		}
		return nil, Internal("Failed to retrieve institution", err)
	}
	if inst.IsDeleted {
		return nil, NotFound("Institution not found")
	}
	return &inst, nil
}

// List returns non-deleted institutions filtered by the optional search
// term, ordered by name for deterministic pagination.
func (s *InstitutionService) List(ctx context.Context, params ListParams) ([]model.Institution, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	q := s.db.WithContext(ctx).Model(&model.Institution{}).Where("is_deleted = false")
	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve institutions", err)
	}

	var items []model.Institution
	if err := q.Order("name ASC").Limit(params.Limit).Offset(params.Offset()).Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve institutions", err)
	}
	return items, total, nil
}

// Update validates and rewrites the caller-supplied fields of an
// existing institution.
func (s *InstitutionService) Update(ctx context.Context, id string, in InstitutionInput) (*model.Institution, error) {
	if !validID(id) {
		return nil, NotFound("Institution not found")
	}
	if err := ValidateInstitutionInput(s.validator, in); err != nil {
		return nil, err
	}

	var inst model.Institution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inst, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Institution not found", "Failed to update institution")
		}
		if inst.IsDeleted {
			return NotFound("Institution not found")
		}

		var count int64
		if err := tx.Model(&model.Institution{}).
			Where("name = ? AND is_deleted = false AND id <> ?", in.Name, id).
			Count(&count).Error; err != nil {
			return Internal("Failed to update institution", err)
		}
		if count > 0 {
			return Conflict("Institution name already exists")
		}

		inst.Name = in.Name
		inst.Type = in.Type
		inst.Address = in.Address
		inst.ContactDetails = datatypes.NewJSONType(in.ContactDetails)
		if err := tx.Save(&inst).Error; err != nil {
			return translateDB(err, "Institution name already exists", "Failed to update institution")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *InstitutionService) ToggleActive(ctx context.Context, id string) (*model.Institution, error) {
	if !validID(id) {
		return nil, NotFound("Institution not found")
	}

	var inst model.Institution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inst, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Institution not found", "Failed to update institution status")
		}
		inst.IsActive = !inst.IsActive
		if err := tx.Save(&inst).Error; err != nil {
			return Internal("Failed to update institution status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// SoftDelete marks an institution deleted. Rows are never physically
// removed so referencing entities keep a stable id.
func (s *InstitutionService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Institution not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inst model.Institution
		if err := tx.First(&inst, "id = ?", id).Error; err != nil {
			return translateLoad(err, "Institution not found", "Failed to delete institution")
		}
		if inst.IsDeleted {
			return NotFound("Institution not found")
		}
		inst.IsDeleted = true
		inst.IsActive = false
		if err := tx.Save(&inst).Error; err != nil {
			return Internal("Failed to delete institution", err)
		}
		return nil
	})
}
