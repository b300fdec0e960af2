package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedSuperAdmin(); err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

// SeedSuperAdmin creates the bootstrap super admin account. Without one
// there is no way to log in and manage the rest of the system.
func (s *Seeder) SeedSuperAdmin() error {
	var count int64
	err := s.db.Model(&model.Admin{}).
		Where("role = ? AND is_deleted = false", model.RoleSuperAdmin).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Super admin already exists, skipping...")
		return nil
	}

	adminEmail := os.Getenv("SUPERADMIN_EMAIL")
	adminPassword := os.Getenv("SUPERADMIN_PASSWORD")
	adminMobile := os.Getenv("SUPERADMIN_MOBILE")

	if adminEmail == "" || adminPassword == "" || adminMobile == "" {
		log.Println("SUPERADMIN_EMAIL, SUPERADMIN_PASSWORD and SUPERADMIN_MOBILE not set, skipping super admin creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	admin := &model.Admin{
		ID:           id.String(),
		Email:        adminEmail,
		MobileNumber: adminMobile,
		PasswordHash: passwordHash,
		Name:         "System Administrator",
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Created super admin: %s\n", admin.Email)
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}
