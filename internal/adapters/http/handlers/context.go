package handlers

import (
	"strconv"

	"imc-donations/internal/adapters/http/middleware"
	"imc-donations/internal/core/domain"
	"imc-donations/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// currentActor reads the caller set by middleware.AuthMiddleware
func currentActor(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals(middleware.LocalUserID).(uint)
	role, _ := c.Locals(middleware.LocalRole).(string)
	return services.Actor{UserID: userID, Role: domain.Role(role)}
}

// paramID parses a positive uint path parameter
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
