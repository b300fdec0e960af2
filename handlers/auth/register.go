package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/middleware"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// AuthHandler handles admin registration and login
type AuthHandler struct {
	service    *services.AdminService
	tokens     *auth.TokenService
	bruteForce *middleware.BruteForceProtection
	production bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, tokens *auth.TokenService, bruteForce *middleware.BruteForceProtection, production bool) *AuthHandler {
	return &AuthHandler{
		service:    services.NewAdminService(db, validation.NewValidator()),
		tokens:     tokens,
		bruteForce: bruteForce,
		production: production,
	}
}

// RegisterRequest represents the request body for registering an admin
type RegisterRequest struct {
	Email         string  `json:"email"`
	MobileNumber  string  `json:"mobileNumber"`
	Password      string  `json:"password"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	InstitutionID *string `json:"institutionId"`
}

// Register handles POST /admin/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.service.Register(c.Context(), services.AdminInput{
		Email:         validation.SanitizeString(req.Email),
		MobileNumber:  validation.SanitizeString(req.MobileNumber),
		Password:      req.Password,
		Name:          validation.SanitizeString(req.Name),
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
	})
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create admin")
	}

	return response.Created(c, "Admin created successfully", admin)
}
