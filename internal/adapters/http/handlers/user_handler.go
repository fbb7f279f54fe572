package handlers

import (
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/pagination"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing users
// @Summary List users
// @Description Paginated user list ordered by name (Administrator, Collaborator)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Name or email substring, or exact id"
// @Param role query string false "Role filter"
// @Param tipoPessoa query string false "Person type filter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c, pagination.DefaultUserPageSize)

	result, err := h.userService.ListUsers(c.Context(), &services.ListUsersInput{
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
		Search:     c.Query("search"),
		Role:       c.Query("role"),
		PersonType: c.Query("tipoPessoa"),
	})
	if err != nil {
		return writeError(c, err, "Falha ao listar usuários.")
	}

	return response.Success(c, "", result)
}

// Me returns the caller's own profile
// @Summary Own profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), currentActor(c).UserID)
	if err != nil {
		return writeError(c, err, "Falha ao carregar usuário.")
	}
	return response.Success(c, "", user)
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "ID de usuário inválido.")
	}

	user, err := h.userService.GetUser(c.Context(), id)
	if err != nil {
		return writeError(c, err, "Falha ao carregar usuário.")
	}
	return response.Success(c, "", user)
}

// UpdateUser handles profile updates
// @Summary Update user
// @Description Self or Administrator. An empty document clears it.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Profile"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "ID de usuário inválido.")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Corpo da requisição inválido.")
	}

	user, err := h.userService.UpdateUser(c.Context(), currentActor(c), id, &input)
	if err != nil {
		return writeError(c, err, "Falha ao atualizar usuário.")
	}
	return response.Success(c, "Usuário atualizado com sucesso.", user)
}

// UpdateRole changes a user's role
// @Summary Update user role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateRoleInput true "Role"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "ID de usuário inválido.")
	}

	var input services.UpdateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Corpo da requisição inválido.")
	}

	user, err := h.userService.UpdateRole(c.Context(), id, &input)
	if err != nil {
		return writeError(c, err, "Falha ao atualizar tipo de usuário.")
	}
	return response.Success(c, "Tipo de usuário atualizado com sucesso.", user)
}

// DeleteUser soft deletes a user
// @Summary Delete user
// @Description Soft delete. Past donations stay in the reports.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "ID de usuário inválido.")
	}

	if err := h.userService.DeleteUser(c.Context(), currentActor(c), id); err != nil {
		return writeError(c, err, "Falha ao excluir usuário.")
	}
	return response.Success(c, "Usuário excluído com sucesso.", nil)
}

// Stats counts users by role and person type
// @Summary User statistics
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/stats [get]
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.Context())
	if err != nil {
		return writeError(c, err, "Falha ao carregar estatísticas.")
	}
	return response.Success(c, "", stats)
}
