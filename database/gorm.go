package database

import (
	"fmt"
	"log"
	"time"

	"github.com/creoleap/api/config"
	"github.com/creoleap/api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// TranslateError maps driver errors to gorm.ErrDuplicatedKey and
	// friends, which the services rely on for conflict detection.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs AutoMigrate for all models and installs the partial unique
// indexes that enforce uniqueness among non-deleted rows only.
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.Institution{},
		&model.Department{},
		&model.Class{},
		&model.Student{},
		&model.Staff{},
		&model.Admin{},
	)
	if err != nil {
		return err
	}

	return s.createPartialUniqueIndexes()
}

// createPartialUniqueIndexes adds uniqueness constraints scoped to live
// rows. Soft-deleted rows keep their values without blocking reuse.
func (s *GORMStore) createPartialUniqueIndexes() error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_institutions_name_live
			ON institutions (name) WHERE is_deleted = false`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_departments_institution_name_live
			ON departments (institution_id, name) WHERE is_deleted = false`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_classes_placement_live
			ON classes (institution_id, COALESCE(department_id::text, ''), grade, section) WHERE is_deleted = false`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_staffs_email_live
			ON staffs (email) WHERE is_deleted = false`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email_live
			ON admins (email) WHERE is_deleted = false`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_mobile_number_live
			ON admins (mobile_number) WHERE is_deleted = false`,
	}

	for _, stmt := range statements {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating partial unique index: %w", err)
		}
	}
	return nil
}

// GetDB exposes the underlying GORM handle
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// Close shuts down the underlying connection pool
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
