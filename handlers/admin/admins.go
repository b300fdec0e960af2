package admin

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// AdminHandler handles admin account management requests
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		service: services.NewAdminService(db, validation.NewValidator()),
	}
}

// UpdateAdminRequest represents the request body for updating an admin;
// omitted fields are left unchanged
type UpdateAdminRequest struct {
	Email         *string `json:"email"`
	MobileNumber  *string `json:"mobileNumber"`
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	InstitutionID *string `json:"institutionId"`
	Password      *string `json:"password"`
	IsActive      *bool   `json:"isActive"`
}

// List handles GET /admin/admin
func (h *AdminHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.AdminListParams{
		ListParams: services.ListParams{
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		},
		InstitutionID: c.Query("institutionId"),
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve admins")
	}

	params.Normalize()
	if len(items) == 0 {
		scope := params.InstitutionID
		if scope == "" {
			scope = "any"
		}
		message := fmt.Sprintf("No admins found for institution: %s", scope)
		if params.Search != "" {
			message = fmt.Sprintf("No admins found matching search term: %s for institution: %s", params.Search, scope)
		}
		return response.Paginated(c, message, []model.Admin{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Admins retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/admin/:id
func (h *AdminHandler) Get(c *fiber.Ctx) error {
	admin, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to fetch admin")
	}

	return response.SuccessWithMessage(c, "Admin retrieved successfully", admin)
}

// Update handles PUT /admin/admin/:id
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	var req UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.service.Update(c.Context(), c.Params("id"), services.AdminUpdateInput{
		Email:         req.Email,
		MobileNumber:  req.MobileNumber,
		Name:          req.Name,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
		Password:      req.Password,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update admin")
	}

	return response.SuccessWithMessage(c, "Admin updated successfully", admin)
}

// ToggleStatus handles PATCH /admin/admin/:id and
// PATCH /admin/admin/:id/toggle-status
func (h *AdminHandler) ToggleStatus(c *fiber.Ctx) error {
	admin, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to toggle admin status")
	}

	message := "Admin deactivated successfully"
	if admin.IsActive {
		message = "Admin activated successfully"
	}
	return response.SuccessWithMessage(c, message, admin)
}

// Delete handles DELETE /admin/admin/:id
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete admin")
	}

	return response.Message(c, fiber.StatusOK, "Admin deleted successfully")
}
