package middleware

import (
	"errors"
	"strings"

	"imc-donations/internal/config"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/jwt"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalUserID = "userID"
	LocalName   = "name"
	LocalRole   = "role"
)

// AuthMiddleware requires a valid bearer token
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Authorization header
		var accessToken string
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Token de acesso obrigatório.")
		}

		// 3. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Token de acesso expirado.")
			}
			return response.Unauthorized(c, "Token de acesso inválido.")
		}

		// 4. Set user info in context
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalName, claims.Name)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RoleMiddleware allows only the given roles. It must run after AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Não autorizado.")
		}

		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Você não tem permissão para acessar este recurso.")
	}
}

// AdminOnly allows only Administrators
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdministrator)
}

// StaffOnly allows Administrators and Collaborators
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdministrator, domain.RoleCollaborator)
}
