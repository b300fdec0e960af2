package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/validation"
)

// AdminService manages administrator accounts: registration, login
// credential checks and the usual lifecycle operations. Soft-deleting
// an admin scrubs its email and mobile number so the live-uniqueness
// constraints release the values for reuse.
type AdminService struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, v *validation.Validator) *AdminService {
	return &AdminService{db: db, validator: v}
}

// AdminUpdateInput carries the caller-supplied fields for updating an
// admin. Nil pointers are left unchanged.
type AdminUpdateInput struct {
	Email         *string
	MobileNumber  *string
	Name          *string
	Role          *string
	InstitutionID *string
	Password      *string
	IsActive      *bool
}

// AdminListParams extends the common list parameters with the
// institution scope filter.
type AdminListParams struct {
	ListParams
	InstitutionID string
}

// Register validates and inserts a new admin account. role=admin
// accounts append their id to the institution's admin list in the same
// transaction.
func (s *AdminService) Register(ctx context.Context, in AdminInput) (*model.Admin, error) {
	if err := ValidateAdminInput(s.validator, in); err != nil {
		return nil, err
	}

	var admin model.Admin
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inst *model.Institution
		if in.Role == model.RoleAdmin {
			var loaded model.Institution
			if err := tx.First(&loaded, "id = ?", *in.InstitutionID).Error; err != nil {
				return translateLoad(err, "Invalid institute ID", "Failed to create admin")
			}
			if loaded.IsDeleted {
				return NotFound("Invalid institute ID")
			}
			inst = &loaded
		}

		var existing model.Admin
		err := tx.Where("(email = ? OR mobile_number = ?) AND is_deleted = false", in.Email, in.MobileNumber).
			First(&existing).Error
		if err == nil {
			if existing.Email == in.Email {
				return Conflict("Email already exists")
			}
			return Conflict("Mobile number already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Internal("Failed to create admin", err)
		}

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return Internal("Password hashing failed", err)
		}

		id, err := newID()
		if err != nil {
			return Internal("Failed to create admin", err)
		}

		var institutionID *string
		if in.Role == model.RoleAdmin {
			institutionID = in.InstitutionID
		}
		admin = model.Admin{
			ID:            id,
			Email:         in.Email,
			MobileNumber:  in.MobileNumber,
			PasswordHash:  hash,
			Name:          in.Name,
			Role:          in.Role,
			InstitutionID: institutionID,
			IsActive:      true,
			IsDeleted:     false,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return translateDB(err, "Email already exists", "Failed to create admin")
		}

		if inst != nil {
			inst.AdminIDs = append(inst.AdminIDs, id)
			if err := tx.Model(inst).Update("admin_ids", inst.AdminIDs).Error; err != nil {
				return Internal("Failed to create admin", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Login verifies credentials and records the login audit fields.
// Failures are deliberately distinct: unknown email and wrong password
// are 401, an inactive account is 403.
func (s *AdminService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.Admin, error) {
	if email == "" || password == "" {
		return nil, InvalidArgument("Email and password are required")
	}

	var admin model.Admin
	if err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthorized("Email not found")
		}
		return nil, Internal("Login failed", err)
	}

	if !admin.IsActive {
		return nil, Forbidden("Account is inactive")
	}

	if err := auth.VerifyPassword(admin.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, Unauthorized("Invalid password")
		}
		return nil, Internal("Login failed", err)
	}

	now := time.Now()
	admin.LastLogin = &now
	admin.LastIP = ip
	admin.LastUserAgent = userAgent
	if err := s.db.WithContext(ctx).Model(&admin).
		Updates(map[string]interface{}{
			"last_login":      now,
			"last_ip":         ip,
			"last_user_agent": userAgent,
		}).Error; err != nil {
		return nil, Internal("Login failed", err)
	}

	return &admin, nil
}

// GetByID returns an admin with its institution preloaded; soft-deleted
// rows read as missing.
func (s *AdminService) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	if !validID(id) {
		return nil, NotFound("Admin not found")
	}

	var admin model.Admin
	if err := s.db.WithContext(ctx).Preload("Institution").
		First(&admin, "id = ? AND is_deleted = false", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Admin not found")
		}
		return nil, Internal("Failed to fetch admin", err)
	}
	return &admin, nil
}

// List returns non-deleted admins. Without an institution filter,
// super_admin accounts (null institution) are excluded; with one, the
// filter must name an existing institution.
func (s *AdminService) List(ctx context.Context, params AdminListParams) ([]model.Admin, int64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}

	if params.InstitutionID != "" {
		if !s.validator.UUID(params.InstitutionID) {
			return nil, 0, InvalidArgument("Institution ID must be a valid UUID, got: " + params.InstitutionID)
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Institution{}).
			Where("id = ?", params.InstitutionID).Count(&count).Error; err != nil {
			return nil, 0, Internal("Failed to retrieve admins", err)
		}
		if count == 0 {
			return nil, 0, InvalidArgument("Institution ID does not exist: " + params.InstitutionID)
		}
	}

	q := s.db.WithContext(ctx).Model(&model.Admin{}).Where("is_deleted = false")
	if params.InstitutionID != "" {
		q = q.Where("institution_id = ?", params.InstitutionID)
	} else {
		q = q.Where("institution_id IS NOT NULL")
	}
	if params.Search != "" {
		q = q.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve admins", err)
	}

	var items []model.Admin
	if err := q.Order("name ASC").Limit(params.Limit).Offset(params.Offset()).Find(&items).Error; err != nil {
		return nil, 0, Internal("Failed to retrieve admins", err)
	}
	return items, total, nil
}

// Update writes only the fields the caller supplied, re-validating
// formats, role coupling and uniqueness against other live rows.
func (s *AdminService) Update(ctx context.Context, id string, in AdminUpdateInput) (*model.Admin, error) {
	if !validID(id) {
		return nil, NotFound("Admin not found")
	}
	if in.Email != nil && len(*in.Email) > maxAdminEmailLength {
		return nil, InvalidArgument("Email must be 45 characters or less")
	}
	if in.Email != nil && !s.validator.Email(*in.Email) {
		return nil, InvalidArgument("Invalid email format")
	}
	if in.Name != nil && len(*in.Name) > maxAdminNameLength {
		return nil, InvalidArgument("Name must be 45 characters or less")
	}
	if in.MobileNumber != nil && !s.validator.Mobile(*in.MobileNumber) {
		return nil, InvalidArgument("Mobile number must be a 10-digit number")
	}
	if in.Password != nil && !auth.IsPasswordValid(*in.Password) {
		return nil, InvalidArgument("Password must be at least 8 characters long")
	}
	if in.Role != nil {
		if !model.ValidRole(*in.Role) {
			return nil, InvalidArgument("Invalid role. Must be 'super_admin' or 'admin'")
		}
		if err := ValidateRoleScope(*in.Role, in.InstitutionID); err != nil {
			return nil, err
		}
	}
	if in.InstitutionID != nil && *in.InstitutionID != "" && !s.validator.UUID(*in.InstitutionID) {
		return nil, InvalidArgument("Invalid institutionId format")
	}

	var admin model.Admin
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&admin, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Admin not found", "Failed to update admin")
		}

		if in.Role != nil && *in.Role == model.RoleAdmin && in.InstitutionID != nil {
			var count int64
			if err := tx.Model(&model.Institution{}).
				Where("id = ?", *in.InstitutionID).Count(&count).Error; err != nil {
				return Internal("Failed to update admin", err)
			}
			if count == 0 {
				return NotFound("Invalid institute ID")
			}
		}

		if in.Email != nil && *in.Email != admin.Email {
			var count int64
			if err := tx.Model(&model.Admin{}).
				Where("email = ? AND is_deleted = false", *in.Email).Count(&count).Error; err != nil {
				return Internal("Failed to update admin", err)
			}
			if count > 0 {
				return Conflict("Email already exists")
			}
		}
		if in.MobileNumber != nil && *in.MobileNumber != admin.MobileNumber {
			var count int64
			if err := tx.Model(&model.Admin{}).
				Where("mobile_number = ? AND is_deleted = false", *in.MobileNumber).Count(&count).Error; err != nil {
				return Internal("Failed to update admin", err)
			}
			if count > 0 {
				return Conflict("Mobile number already exists")
			}
		}

		if in.Email != nil {
			admin.Email = *in.Email
		}
		if in.MobileNumber != nil {
			admin.MobileNumber = *in.MobileNumber
		}
		if in.Name != nil {
			admin.Name = *in.Name
		}
		if in.Role != nil {
			admin.Role = *in.Role
			if *in.Role == model.RoleAdmin {
				admin.InstitutionID = in.InstitutionID
			} else {
				admin.InstitutionID = nil
			}
		}
		if in.IsActive != nil {
			admin.IsActive = *in.IsActive
		}
		if in.Password != nil {
			hash, err := auth.HashPassword(*in.Password)
			if err != nil {
				return Internal("Password hashing failed", err)
			}
			admin.PasswordHash = hash
		}

		if err := tx.Save(&admin).Error; err != nil {
			return translateDB(err, "Email already exists", "Failed to update admin")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// ToggleActive flips the isActive flag; only existence is checked.
func (s *AdminService) ToggleActive(ctx context.Context, id string) (*model.Admin, error) {
	if !validID(id) {
		return nil, NotFound("Admin not found")
	}

	var admin model.Admin
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&admin, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Admin not found", "Failed to toggle admin status")
		}
		admin.IsActive = !admin.IsActive
		if err := tx.Save(&admin).Error; err != nil {
			return Internal("Failed to toggle admin status", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// SoftDelete marks an admin deleted and anonymizes its identity fields
// at delete time so the email and mobile number can be reused.
func (s *AdminService) SoftDelete(ctx context.Context, id string) error {
	if !validID(id) {
		return NotFound("Admin not found")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin model.Admin
		if err := tx.First(&admin, "id = ? AND is_deleted = false", id).Error; err != nil {
			return translateLoad(err, "Admin not found", "Failed to delete admin")
		}
		admin.IsDeleted = true
		admin.IsActive = false
		admin.AnonymizeIdentity(time.Now())
		if err := tx.Save(&admin).Error; err != nil {
			return Internal("Failed to delete admin", err)
		}
		return nil
	})
}
