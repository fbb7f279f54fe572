package handlers

import (
	"errors"

	"imc-donations/internal/core/domain"
	"imc-donations/internal/pkg/logger"
	"imc-donations/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps a service error to the matching status and a message
// that is safe to show. Unknown errors are logged and become a 500 with
// fallback as the message.
func writeError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.BadRequest(c, verr.Message)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "E-mail ou senha inválidos.")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Não autorizado.")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Você não tem permissão para realizar esta ação.")
	case errors.Is(err, domain.ErrCannotDeleteSelf):
		return response.BadRequest(c, "Você não pode excluir sua própria conta.")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "Usuário não encontrado.")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPaymentNotFound):
		return response.NotFound(c, "Recurso não encontrado.")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return response.Conflict(c, "Este e-mail já está em uso.")
	case errors.Is(err, domain.ErrDocumentInUse):
		return response.Conflict(c, "Este documento já está cadastrado.")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Registro duplicado.")
	case errors.Is(err, domain.ErrProviderUnavailable):
		return response.BadGateway(c, "Não foi possível se comunicar com o provedor de pagamento. Tente novamente.")
	default:
		logger.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return response.InternalServerError(c, fallback)
	}
}
