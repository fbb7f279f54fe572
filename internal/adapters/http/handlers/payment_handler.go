package handlers

import (
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles donation checkout and donation history
type PaymentHandler struct {
	donationService *services.DonationService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(donationService *services.DonationService) *PaymentHandler {
	return &PaymentHandler{donationService: donationService}
}

// CreatePreference opens a checkout for the caller
// @Summary Create donation checkout
// @Description Returns the provider checkout URL. The payment is stored as PENDING.
// @Tags Pagamento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateIntentInput true "Donation amount"
// @Success 200 {object} services.IntentResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /pagamento/criar-preferencia [post]
func (h *PaymentHandler) CreatePreference(c *fiber.Ctx) error {
	var input services.CreateIntentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Corpo da requisição inválido.")
	}

	result, err := h.donationService.CreateIntent(c.Context(), currentActor(c).UserID, input.Valor)
	if err != nil {
		return writeError(c, err, "Falha ao criar preferência de pagamento.")
	}
	return c.JSON(result)
}

// MyDonations lists the caller's approved donations
// @Summary My donations
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.DonationSummary
// @Failure 401 {object} response.Response
// @Router /pagamento/me [get]
func (h *PaymentHandler) MyDonations(c *fiber.Ctx) error {
	donations, err := h.donationService.MyDonations(c.Context(), currentActor(c).UserID)
	if err != nil {
		return writeError(c, err, "Falha ao carregar doações.")
	}
	return c.JSON(donations)
}

// DonationsByUser lists another user's approved donations
// @Summary Donations of a user
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} services.DonationSummary
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /pagamento/{userId} [get]
func (h *PaymentHandler) DonationsByUser(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return response.BadRequest(c, "ID de usuário inválido.")
	}

	donations, err := h.donationService.DonationsByUser(c.Context(), userID)
	if err != nil {
		return writeError(c, err, "Falha ao carregar doações.")
	}
	return c.JSON(donations)
}
