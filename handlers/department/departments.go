package department

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// DepartmentHandler handles department-related requests
type DepartmentHandler struct {
	service *services.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{
		service: services.NewDepartmentService(db, validation.NewValidator()),
	}
}

// DepartmentRequest represents the request body for creating or
// updating a department
type DepartmentRequest struct {
	Name          string `json:"name"`
	InstitutionID string `json:"institutionId"`
}

// Create handles POST /admin/departments
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.service.Create(c.Context(), validation.SanitizeString(req.Name), req.InstitutionID)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create department")
	}

	return response.Created(c, "Department created successfully", dept)
}

// List handles GET /admin/departments
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.DepartmentListParams{
		ListParams: services.ListParams{
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		},
		InstitutionID: c.Query("institutionId"),
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve departments")
	}

	params.Normalize()
	if len(items) == 0 {
		message := "No departments found in the database"
		if params.Search != "" {
			message = "No departments found matching search term: " + params.Search
		}
		return response.Paginated(c, message, []model.Department{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Departments retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/departments/:id
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	dept, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve department")
	}

	return response.SuccessWithMessage(c, "Department retrieved successfully", dept)
}

// Update handles PUT /admin/departments/:id
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.service.Update(c.Context(), c.Params("id"), validation.SanitizeString(req.Name), req.InstitutionID)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update department")
	}

	return response.SuccessWithMessage(c, "Department updated successfully", dept)
}

// ToggleStatus handles PATCH /admin/departments/:id/toggle-status
func (h *DepartmentHandler) ToggleStatus(c *fiber.Ctx) error {
	dept, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update department status")
	}

	return response.SuccessWithMessage(c, "Department status updated successfully", dept)
}

// Delete handles DELETE /admin/departments/:id
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete department")
	}

	return response.Message(c, fiber.StatusOK, "Department deleted successfully")
}
