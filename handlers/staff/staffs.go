package staff

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

// StaffHandler handles staff-related requests
type StaffHandler struct {
	service *services.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{
		service: services.NewStaffService(db, validation.NewValidator()),
	}
}

// CreateStaffRequest represents the request body for creating a staff
// member
type CreateStaffRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Type          string `json:"type"`
	InstitutionID string `json:"institutionId"`
}

// UpdateStaffRequest represents the request body for updating a staff
// member; omitted fields are left unchanged
type UpdateStaffRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Type          string `json:"type"`
	InstitutionID string `json:"institutionId"`
	IsActive      *bool  `json:"isActive"`
}

// Create handles POST /admin/staff
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.service.Create(c.Context(),
		validation.SanitizeString(req.Name), validation.SanitizeString(req.Email),
		req.Type, req.InstitutionID)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create staff")
	}

	return response.Created(c, "Staff created successfully", staff)
}

// List handles GET /admin/staff
func (h *StaffHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.StaffListParams{
		ListParams: services.ListParams{
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		},
		InstitutionID: c.Query("institutionId"),
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve staffs")
	}

	params.Normalize()
	if len(items) == 0 {
		scope := params.InstitutionID
		if scope == "" {
			scope = "any"
		}
		message := fmt.Sprintf("No staffs found for institution: %s", scope)
		if params.Search != "" {
			message = fmt.Sprintf("No staffs found matching search term: %s for institution: %s", params.Search, scope)
		}
		return response.Paginated(c, message, []model.Staff{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Staffs retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/staff/:id
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to fetch staff")
	}

	return response.SuccessWithMessage(c, "Staff retrieved successfully", staff)
}

// Update handles PUT /admin/staff/:id
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	staff, err := h.service.Update(c.Context(), c.Params("id"), services.StaffInput{
		Name:          validation.SanitizeString(req.Name),
		Email:         validation.SanitizeString(req.Email),
		Type:          req.Type,
		InstitutionID: req.InstitutionID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update staff")
	}

	return response.SuccessWithMessage(c, "Staff updated successfully", staff)
}

// ToggleStatus handles PATCH /admin/staff/:id/toggle-status
func (h *StaffHandler) ToggleStatus(c *fiber.Ctx) error {
	staff, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to toggle staff status")
	}

	message := "Staff deactivated successfully"
	if staff.IsActive {
		message = "Staff activated successfully"
	}
	return response.SuccessWithMessage(c, message, staff)
}

// Delete handles DELETE /admin/staff/:id
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete staff")
	}

	return response.Message(c, fiber.StatusOK, "Staff deleted successfully")
}
