package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/creoleap/api/model"
	"github.com/creoleap/api/utils/auth"
	"github.com/creoleap/api/utils/response"
)

// AuthMiddleware authenticates requests with role-keyed tokens
type AuthMiddleware struct {
	tokens *auth.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// extractToken pulls the token from the admin cookie, the Authorization
// header, or the x-admin-token header, in that order.
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("admin"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	return c.Get("x-admin-token")
}

// RequireRoles is middleware that requires a token decryptable under one
// of the permitted roles' keys. A token sealed for a role outside the
// list fails authentication, because its key is never tried.
func (m *AuthMiddleware) RequireRoles(roles ...string) fiber.Handler {
	if len(roles) == 0 {
		roles = []string{model.RoleSuperAdmin, model.RoleAdmin}
	}

	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		if !strings.HasPrefix(token, auth.TokenPrefix) {
			return response.Unauthorized(c, "Invalid token")
		}

		for _, role := range roles {
			payload, err := m.tokens.Decode(token, role)
			if err != nil {
				continue
			}
			// The payload role must match the key that opened it.
			if payload.Role != role {
				continue
			}

			c.Locals("admin_id", payload.ID)
			c.Locals("admin_email", payload.Email)
			c.Locals("admin_role", payload.Role)
			c.Locals("admin_institution_id", payload.InstitutionID)
			c.Locals("token_payload", payload)
			return c.Next()
		}

		return response.Unauthorized(c, "Invalid token")
	}
}

// GetAdminID extracts the authenticated admin id from context
func GetAdminID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("admin_id").(string)
	return id, ok
}

// GetAdminRole extracts the authenticated admin role from context
func GetAdminRole(c *fiber.Ctx) (string, bool) {
	role, ok := c.Locals("admin_role").(string)
	return role, ok
}

// GetTokenPayload extracts the full token payload from context
func GetTokenPayload(c *fiber.Ctx) (*auth.TokenPayload, bool) {
	payload, ok := c.Locals("token_payload").(*auth.TokenPayload)
	return payload, ok
}
