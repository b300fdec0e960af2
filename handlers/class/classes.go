package class

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// ClassHandler handles class-related requests
type ClassHandler struct {
	service *services.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{
		service: services.NewClassService(db),
	}
}

// ClassRequest represents the request body for creating or updating a
// class. DepartmentID is required for colleges and forbidden for
// schools.
type ClassRequest struct {
	Grade         string  `json:"grade"`
	Section       string  `json:"section"`
	InstitutionID string  `json:"institutionId"`
	DepartmentID  *string `json:"departmentId"`
}

func (r ClassRequest) toInput() services.ClassInput {
	return services.ClassInput{
		Grade:         validation.SanitizeString(r.Grade),
		Section:       validation.SanitizeString(r.Section),
		InstitutionID: r.InstitutionID,
		DepartmentID:  r.DepartmentID,
	}
}

// Create handles POST /admin/classes
func (h *ClassHandler) Create(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	class, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create class")
	}

	return response.Created(c, "Class created successfully", class)
}

// List handles GET /admin/classes
func (h *ClassHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.ClassListParams{
		ListParams: services.ListParams{
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		},
		InstitutionID: c.Query("institutionId"),
		DepartmentID:  c.Query("departmentId"),
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve classes")
	}

	params.Normalize()
	if len(items) == 0 {
		message := "No classes found in the database"
		if params.Search != "" {
			message = "No classes found matching search term: " + params.Search
		}
		return response.Paginated(c, message, []model.Class{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Classes retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/classes/:id
func (h *ClassHandler) Get(c *fiber.Ctx) error {
	class, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve class")
	}

	return response.SuccessWithMessage(c, "Class retrieved successfully", class)
}

// Update handles PUT /admin/classes/:id
func (h *ClassHandler) Update(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	class, err := h.service.Update(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update class")
	}

	return response.SuccessWithMessage(c, "Class updated successfully", class)
}

// ToggleStatus handles PATCH /admin/classes/:id/toggle-status
func (h *ClassHandler) ToggleStatus(c *fiber.Ctx) error {
	class, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update class status")
	}

	return response.SuccessWithMessage(c, "Class status updated successfully", class)
}

// Delete handles DELETE /admin/classes/:id
func (h *ClassHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete class")
	}

	return response.Message(c, fiber.StatusOK, "Class deleted successfully")
}
