package handlers

import (
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	PersonType string `json:"personType"`
	Document   string `json:"document"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles donor self-registration
// @Summary Register new donor
// @Description Creates a Donor account. A document requires a person type.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Corpo da requisição inválido.")
	}

	user, err := h.authService.Register(c.Context(), &services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		PersonType: req.PersonType,
		Document:   req.Document,
	})
	if err != nil {
		return writeError(c, err, "Falha ao cadastrar usuário.")
	}

	return response.Created(c, "Usuário cadastrado com sucesso.", user)
}

// Login handles user login
// @Summary Login
// @Description Authenticates with email and password and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Corpo da requisição inválido.")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Informe e-mail e senha.")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err, "Falha ao autenticar.")
	}

	return response.Success(c, "Login realizado com sucesso.", result)
}

// Me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.Context(), currentActor(c).UserID)
	if err != nil {
		return writeError(c, err, "Falha ao carregar usuário.")
	}
	return response.Success(c, "", user)
}
