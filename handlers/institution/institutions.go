package institution

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/response"
	"github.com/creoleap/api/utils/validation"
)

// InstitutionHandler handles institution-related requests
type InstitutionHandler struct {
	service *services.InstitutionService
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(db *gorm.DB) *InstitutionHandler {
	return &InstitutionHandler{
		service: services.NewInstitutionService(db, validation.NewValidator()),
	}
}

// InstitutionRequest represents the request body for creating or
// updating an institution
type InstitutionRequest struct {
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	Address        string               `json:"address"`
	ContactDetails model.ContactDetails `json:"contactDetails"`
}

func (r InstitutionRequest) toInput() services.InstitutionInput {
	return services.InstitutionInput{
		Name:           validation.SanitizeString(r.Name),
		Type:           r.Type,
		Address:        validation.SanitizeString(r.Address),
		ContactDetails: r.ContactDetails,
	}
}

// Create handles POST /admin/institutions
func (h *InstitutionHandler) Create(c *fiber.Ctx) error {
	var req InstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	inst, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return response.FromServiceError(c, err, "Failed to create institution")
	}

	return response.Created(c, "Institution created successfully", inst)
}

// List handles GET /admin/institutions
func (h *InstitutionHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	params := services.ListParams{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	items, total, err := h.service.List(c.Context(), params)
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve institutions")
	}

	params.Normalize()
	if len(items) == 0 {
		message := "No institutions found in the database"
		if params.Search != "" {
			message = "No institutions found matching search term: " + params.Search
		}
		return response.Paginated(c, message, []model.Institution{},
			response.CalculatePagination(params.Page, params.Limit, 0))
	}

	return response.Paginated(c, "Institutions retrieved successfully", items,
		response.CalculatePagination(params.Page, params.Limit, total))
}

// Get handles GET /admin/institutions/:id
func (h *InstitutionHandler) Get(c *fiber.Ctx) error {
	inst, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to retrieve institution")
	}

	return response.SuccessWithMessage(c, "Institution retrieved successfully", inst)
}

// Update handles PUT /admin/institutions/:id
func (h *InstitutionHandler) Update(c *fiber.Ctx) error {
	var req InstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	inst, err := h.service.Update(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update institution")
	}

	return response.SuccessWithMessage(c, "Institution updated successfully", inst)
}

// ToggleStatus handles PATCH /admin/institutions/:id/toggle-status
func (h *InstitutionHandler) ToggleStatus(c *fiber.Ctx) error {
	inst, err := h.service.ToggleActive(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromServiceError(c, err, "Failed to update institution status")
	}

	return response.SuccessWithMessage(c, "Institution status updated successfully", inst)
}

// Delete handles DELETE /admin/institutions/:id
func (h *InstitutionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return response.FromServiceError(c, err, "Failed to delete institution")
	}

	return response.Message(c, fiber.StatusOK, "Institution deleted successfully")
}
