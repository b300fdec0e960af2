package student

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// StudentHandler handles student-related requests
type StudentHandler struct {
	service *services.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		service: services.NewStudentService(db),
	}
}

// StudentRequest represents the request body for creating or updating a
// student. The institution is always derived from the class.
type StudentRequest struct {
	Name    string `json:"name"`
	ClassID string `json:"classId"`
}

// Create handles POST /admin/students
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.service.Create(c.Context(), validation.SanitizeString(req.Name), req.ClassID)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create student")
	}

	return response.Created(c, "Student created successfully", student)
}

// List handles GET /admin/students
func (h *StudentHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.StudentListParams{
		ListParams: services.ListParams{
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		},
		ClassID:       c.Query("classId"),
		InstitutionID: c.Query("institutionId"),
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve students")
	}

	params.Normalize()
	if len(items) == 0 {
		message := "No students found in the database"
		if params.Search != "" {
			message = "No students found matching search term: " + params.Search
		}
		return response.Paginated(c, message, []model.Student{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Students retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/students/:id
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	student, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve student")
	}

	return response.SuccessWithMessage(c, "Student retrieved successfully", student)
}

// Update handles PUT /admin/students/:id
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.service.Update(c.Context(), c.Params("id"), validation.SanitizeString(req.Name), req.ClassID)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update student")
	}

	return response.SuccessWithMessage(c, "Student updated successfully", student)
}

// ToggleStatus handles PATCH /admin/students/:id/toggle-status
func (h *StudentHandler) ToggleStatus(c *fiber.Ctx) error {
	student, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update student status")
	}

	return response.SuccessWithMessage(c, "Student status updated successfully", student)
}

// Delete handles DELETE /admin/students/:id
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete student")
	}

	return response.Message(c, fiber.StatusOK, "Student deleted successfully")
}
