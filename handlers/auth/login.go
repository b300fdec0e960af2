package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/creoleap/api/services"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/response"
)

const cookieMaxAge = 24 * time.Hour

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginUser is the user object returned on successful login
type loginUser struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	InstitutionID *string `json:"institutionId"`
}

// setAuthCookie writes one of the two auth cookies. In production the
// API and frontend live on different origins, so the cookies need
// SameSite=None with Secure; elsewhere Lax keeps local development
// working over plain HTTP.
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, name, value string, httpOnly bool) {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.production {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Expires:  time.Now().Add(cookieMaxAge),
		HTTPOnly: httpOnly,
		Secure:   h.production,
		SameSite: sameSite,
	})
}

// Login handles POST /admin/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	ip := c.IP()
	admin, err := h.service.Login(c.Context(), req.Email, req.Password, ip, c.Get("User-Agent"))
	if err != nil {
		if svcErr, ok := services.AsError(err); ok && svcErr.Kind == services.KindUnauthorized {
			h.bruteForce.RecordFailedAttempt(c, ip)
		}
		return response.FromServiceError(c, err, "Login failed")
	}

	var institutionID string
	if admin.InstitutionID != nil {
		institutionID = *admin.InstitutionID
	}
	token, err := h.tokens.Encode(auth.TokenPayload{
		ID:            admin.ID,
		Email:         admin.Email,
		Role:          admin.Role,
		InstitutionID: institutionID,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to generate authentication token")
	}

	h.bruteForce.RecordSuccessfulAttempt(c, ip)

	h.setAuthCookie(c, "admin", token, true)
	h.setAuthCookie(c, "role", admin.Role, false)

	return response.SuccessWithMessage(c, "Login successful", fiber.Map{
		"user": loginUser{
			ID:            admin.ID,
			Email:         admin.Email,
			Role:          admin.Role,
			InstitutionID: admin.InstitutionID,
		},
	})
}
