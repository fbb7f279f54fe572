package handlers

import (
	"errors"

	"imc-donations/internal/core/domain"
	"imc-donations/internal/core/services"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives provider notifications
type WebhookHandler struct {
	webhookService *services.WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookService *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// WebhookRequest is the notification body. Only resource and topic are
// read; payment state is always fetched from the provider.
type WebhookRequest struct {
	Resource string `json:"resource"`
	Topic    string `json:"topic"`
}

// WebhookResponse tells the provider what was done
type WebhookResponse struct {
	Outcome services.Outcome `json:"outcome"`
}

// Receive handles a payment notification
// @Summary Payment notification
// @Description Reconciles a payment with the provider. Unknown payments and redeliveries are acknowledged with 200.
// @Tags Pagamento
// @Accept json
// @Produce json
// @Param body body WebhookRequest false "Notification"
// @Param topic query string false "IPN topic"
// @Param id query string false "IPN resource id"
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /pagamento/webhook [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var req WebhookRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Corpo da requisição inválido.")
		}
	}

	// IPN style: ?topic=payment&id=123
	if req.Topic == "" && req.Resource == "" {
		req.Topic = c.Query("topic")
		req.Resource = c.Query("id")
	}

	outcome, err := h.webhookService.HandleNotification(c.Context(), services.Notification{
		Topic:     req.Topic,
		Resource:  req.Resource,
		RequestID: c.Get("x-request-id"),
		Signature: c.Get("x-signature"),
		Payload:   append([]byte(nil), c.Body()...),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedResource):
			return response.BadRequest(c, "Recurso da notificação inválido.")
		case errors.Is(err, domain.ErrInvalidSignature):
			return response.Unauthorized(c, "Assinatura inválida.")
		case errors.Is(err, domain.ErrProviderUnavailable):
			return response.BadGateway(c, "Falha ao consultar o provedor de pagamento.")
		default:
			return response.InternalServerError(c, "Falha ao processar notificação.")
		}
	}

	return c.JSON(WebhookResponse{Outcome: outcome})
}

// RecentEvents lists the notification audit log, newest first
// @Summary Webhook audit log
// @Tags Pagamento
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (1-200)" default(50)
// @Success 200 {array} models.WebhookEvent
// @Failure 403 {object} response.Response
// @Router /pagamento/webhook-events [get]
func (h *WebhookHandler) RecentEvents(c *fiber.Ctx) error {
	events, err := h.webhookService.RecentEvents(c.Context(), c.QueryInt("limit", services.DefaultEventLimit))
	if err != nil {
		return writeError(c, err, "Falha ao carregar notificações.")
	}
	return c.JSON(events)
}
