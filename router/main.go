package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/config"
	"github.com/creoleap/api/handlers"
	admin_handlers "github.com/creoleap/api/handlers/admin"
	auth_handlers "github.com/creoleap/api/handlers/auth"
	class_handlers "github.com/creoleap/api/handlers/class"
	department_handlers "github.com/creoleap/api/handlers/department"
	institution_handlers "github.com/creoleap/api/handlers/institution"
	staff_handlers "github.com/creoleap/api/handlers/staff"
	student_handlers "github.com/creoleap/api/handlers/student"
	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/cache"
	"github.com/creoleap/api/utils/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, getEnv *config.EnvironmentVariables) {
	// Per-role token keys. A token sealed for one role cannot be
	// opened under another role's key.
	tokens := auth.NewTokenService(auth.TokenConfig{
		SuperAdminSecret: getEnv.TOKEN_SUPERADMIN_SECRET,
		AdminSecret:      getEnv.TOKEN_ADMIN_SECRET,
		DefaultSecret:    getEnv.TOKEN_SECRET_KEY,
		Expiry:           24 * time.Hour,
	})

	// Redis backs the brute force counters. When it is unreachable the
	// API still serves, just without lockouts.
	redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	authHandler := auth_handlers.NewAuthHandler(db, tokens, bruteForceProtection, getEnv.IsProduction())
	institutionHandler := institution_handlers.NewInstitutionHandler(db)
	departmentHandler := department_handlers.NewDepartmentHandler(db)
	classHandler := class_handlers.NewClassHandler(db)
	studentHandler := student_handlers.NewStudentHandler(db)
	staffHandler := staff_handlers.NewStaffHandler(db)
	adminHandler := admin_handlers.NewAdminHandler(db)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth)

	admin := app.Group("/admin")

	// Auth routes (public)
	authGroup := admin.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Everything below requires an authenticated admin or super admin
	requireAdmin := authMiddleware.RequireRoles(model.RoleSuperAdmin, model.RoleAdmin)

	institutions := admin.Group("/institutions", requireAdmin)
	institutions.Get("/", institutionHandler.List)
	institutions.Post("/", institutionHandler.Create)
	institutions.Get("/:id", institutionHandler.Get)
	institutions.Put("/:id", institutionHandler.Update)
	institutions.Patch("/:id/toggle-status", institutionHandler.ToggleStatus)
	institutions.Delete("/:id", institutionHandler.Delete)

	departments := admin.Group("/departments", requireAdmin)
	departments.Get("/", departmentHandler.List)
	departments.Post("/", departmentHandler.Create)
	departments.Get("/:id", departmentHandler.Get)
	departments.Put("/:id", departmentHandler.Update)
	departments.Patch("/:id/toggle-status", departmentHandler.ToggleStatus)
	departments.Delete("/:id", departmentHandler.Delete)

	classes := admin.Group("/classes", requireAdmin)
	classes.Get("/", classHandler.List)
	classes.Post("/", classHandler.Create)
	classes.Get("/:id", classHandler.Get)
	classes.Put("/:id", classHandler.Update)
	classes.Patch("/:id/toggle-status", classHandler.ToggleStatus)
	classes.Delete("/:id", classHandler.Delete)

	students := admin.Group("/students", requireAdmin)
	students.Get("/", studentHandler.List)
	students.Post("/", studentHandler.Create)
	students.Get("/:id", studentHandler.Get)
	students.Put("/:id", studentHandler.Update)
	students.Patch("/:id/toggle-status", studentHandler.ToggleStatus)
	students.Delete("/:id", studentHandler.Delete)

	staffs := admin.Group("/staff", requireAdmin)
	staffs.Get("/", staffHandler.List)
	staffs.Post("/", staffHandler.Create)
	staffs.Get("/:id", staffHandler.Get)
	staffs.Put("/:id", staffHandler.Update)
	staffs.Patch("/:id/toggle-status", staffHandler.ToggleStatus)
	staffs.Delete("/:id", staffHandler.Delete)

	// Admin account management is restricted to super admins
	requireSuperAdmin := authMiddleware.RequireRoles(model.RoleSuperAdmin)

	admins := admin.Group("/admin", requireSuperAdmin)
	admins.Get("/", adminHandler.List)
	admins.Get("/:id", adminHandler.Get)
	admins.Put("/:id", adminHandler.Update)
	admins.Patch("/:id", adminHandler.ToggleStatus)
	admins.Patch("/:id/toggle-status", adminHandler.ToggleStatus)
	admins.Delete("/:id", adminHandler.Delete)
}
