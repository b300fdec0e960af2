package response

import (
	"github.com/gofiber/fiber/v2"

	"github.com/creoleap/api/services"
)

// Response is the standard API envelope
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// PaginatedResponse is the envelope for list endpoints
type PaginatedResponse struct {
	Message    string         `json:"message"`
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// SuccessWithMessage returns a 200 response with a message and data
func SuccessWithMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Message: message,
		Data:    data,
	})
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Message: message,
		Data:    data,
	})
}

// Message returns a bare {message} body with the given status
func Message(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{Message: message})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusBadRequest, message)
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return Message(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return Message(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Message(c, fiber.StatusNotFound, message)
}

// Conflict returns a 409 Conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusConflict, message)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Message(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Message(c, fiber.StatusInternalServerError, message)
}

// Paginated returns a paginated list response
func Paginated(c *fiber.Ctx, message string, data interface{}, pagination PaginationMeta) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return PaginationMeta{
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}
}

// FromServiceError maps a service error to the matching HTTP response.
// Unknown errors are reported as an internal failure with the fallback
// message so storage details never reach the caller.
func FromServiceError(c *fiber.Ctx, err error, fallback string) error {
	svcErr, ok := services.AsError(err)
	if !ok {
		return InternalServerError(c, fallback)
	}

	switch svcErr.Kind {
	case services.KindInvalidArgument:
		return BadRequest(c, svcErr.Message)
	case services.KindUnauthorized:
		return Unauthorized(c, svcErr.Message)
	case services.KindForbidden:
		return Forbidden(c, svcErr.Message)
	case services.KindNotFound:
		return NotFound(c, svcErr.Message)
	case services.KindConflict:
		return Conflict(c, svcErr.Message)
	default:
		return InternalServerError(c, fallback)
	}
}
