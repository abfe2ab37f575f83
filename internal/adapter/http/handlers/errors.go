package handlers

import (
	"errors"
	"net/http"

	"neurovita_checkout/internal/adapter/http/validators"
	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapDomainError is the status taxonomy shared by every checkout endpoint.
func mapDomainError(err error) *pkg.AppError {
	var (
		validationErr *entities.ValidationError
		transitionErr *entities.TransitionError
		gatewayErr    *entities.GatewayError
	)
	switch {
	case errors.As(err, &validationErr):
		return pkg.NewDomainError("VALIDATION_ERROR", "Dados inválidos", err, http.StatusBadRequest).WithDetails(validationErr.Fields)
	case errors.Is(err, entities.ErrInvalidAmount):
		return pkg.NewDomainError("INVALID_AMOUNT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidQuantity):
		return pkg.NewDomainError("INVALID_QUANTITY", "Quantidade inválida", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidWebhookPayload):
		return pkg.NewDomainError("INVALID_PAYLOAD", "Invalid webhook payload", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrAuthentication):
		return pkg.NewDomainError("UNAUTHORIZED", "Authentication failed", err, http.StatusUnauthorized)
	case errors.Is(err, entities.ErrOrderNotFound):
		return pkg.NewDomainError("ORDER_NOT_FOUND", "Pedido não encontrado", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Not found", err, http.StatusNotFound)
	case errors.As(err, &transitionErr):
		return pkg.NewDomainError("ILLEGAL_TRANSITION", transitionErr.Error(), err, http.StatusConflict).
			WithDetails(map[string]string{"from": string(transitionErr.From), "to": string(transitionErr.To)})
	case errors.Is(err, entities.ErrOrderAlreadyPaid):
		return pkg.NewDomainError("ORDER_ALREADY_PAID", "Pedido já pago", err, http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidOrderState):
		return pkg.NewDomainError("INVALID_ORDER_STATE", "Operação inválida para o status atual do pedido", err, http.StatusConflict)
	case errors.Is(err, entities.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "Pedido alterado por outra operação", err, http.StatusConflict).AsRetryable()
	case errors.As(err, &gatewayErr):
		status := http.StatusBadGateway
		if gatewayErr.Timeout {
			status = http.StatusServiceUnavailable
		}
		return pkg.NewDomainError("GATEWAY_ERROR", "Erro ao gerar PIX, tente novamente", err, status).AsRetryable()
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// bindingError turns a gin binding failure into a 400 carrying per-field messages when available.
func bindingError(err error) *pkg.AppError {
	if fields := validators.FieldMessages(err); len(fields) > 0 {
		return pkg.NewDomainError("VALIDATION_ERROR", "Dados inválidos", err, http.StatusBadRequest).WithDetails(fields)
	}
	return errInvalidRequest
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
