package handlers

import (
	"net/http"
	"strings"

	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderOrionPaySignature    = "X-Webhook-Signature"
	HeaderMercadoPagoSignature = "X-Signature"
	HeaderMercadoPagoRequestID = "X-Request-Id"
)

// WebhookHandler receives gateway notifications. Anything the use case treats as a replay is
// acknowledged with 200 so the gateway stops retrying.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	log     zerolog.Logger
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{usecase: uc, log: logger.Component(log, "webhook", "handler")}
}

// OrionPay godoc
// @Summary      OrionPay payment notification
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature  header    string  false  "HMAC-SHA256 of the raw body"
// @Success      200                  {object}  response.WebhookAckResponse
// @Failure      400                  {object}  pkg.HTTPError
// @Failure      401                  {object}  pkg.HTTPError
// @Failure      404                  {object}  pkg.HTTPError
// @Router       /webhooks/orionpay [post]
func (h *WebhookHandler) OrionPay(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)

	body, err := c.GetRawData()
	if err != nil {
		log.Warn().Err(err).Msg("orionpay body unreadable")
		writeError(c, errInvalidRequest)
		return
	}

	result, err := h.usecase.HandleOrionPay(c.Request.Context(), body, c.GetHeader(HeaderOrionPaySignature))
	if err != nil {
		log.Warn().Err(err).Msg("orionpay webhook rejected")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("event", result.Event).Str("outcome", result.Outcome).Str("order_id", result.OrderID).Msg("orionpay webhook handled")

	c.JSON(http.StatusOK, ackFrom(result))
}

// OrionPayTest godoc
// @Summary      Webhook reachability probe
// @Tags         webhooks
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /webhooks/orionpay/test [get]
func (h *WebhookHandler) OrionPayTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Webhook endpoint ativo"})
}

// SimulatePayment godoc
// @Summary      Confirm a payment manually (test mode and demos)
// @Tags         webhooks
// @Produce      json
// @Security     Bearer
// @Param        order_id  query     string  true  "Order id or order number"
// @Success      200       {object}  response.WebhookAckResponse
// @Failure      401       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /webhooks/orionpay/simulate-payment [post]
func (h *WebhookHandler) SimulatePayment(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)
	ref := strings.TrimSpace(c.Query("order_id"))
	if ref == "" {
		writeError(c, errMissingOrderID)
		return
	}

	result, err := h.usecase.SimulatePayment(c.Request.Context(), ref)
	if err != nil {
		log.Warn().Err(err).Str("order_ref", ref).Msg("simulated payment failed")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("order_id", result.OrderID).Str("outcome", result.Outcome).Msg("simulated payment applied")

	c.JSON(http.StatusOK, ackFrom(result))
}

// MercadoPago godoc
// @Summary      Mercado Pago payment notification
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        x-signature   header    string  false  "ts=...,v1=..."
// @Param        x-request-id  header    string  false  "Notification request id"
// @Param        data.id       query     string  false  "Payment id"
// @Success      200           {object}  response.WebhookAckResponse
// @Failure      401           {object}  pkg.HTTPError
// @Failure      502           {object}  pkg.HTTPError
// @Router       /webhooks/mercadopago [post]
func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)

	body, err := c.GetRawData()
	if err != nil {
		log.Warn().Err(err).Msg("mercadopago body unreadable")
		writeError(c, errInvalidRequest)
		return
	}

	dataID := c.Query("data.id")
	if dataID == "" {
		dataID = c.Query("id")
	}
	result, err := h.usecase.HandleMercadoPago(c.Request.Context(), usecase.MercadoPagoNotification{
		Body:      body,
		Signature: c.GetHeader(HeaderMercadoPagoSignature),
		RequestID: c.GetHeader(HeaderMercadoPagoRequestID),
		DataID:    dataID,
	})
	if err != nil {
		log.Warn().Err(err).Str("data_id", dataID).Msg("mercadopago webhook rejected")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("outcome", result.Outcome).Str("order_id", result.OrderID).Msg("mercadopago webhook handled")

	c.JSON(http.StatusOK, ackFrom(result))
}

func ackFrom(r usecase.WebhookResult) response.WebhookAckResponse {
	return response.WebhookAckResponse{Received: true, Event: r.Event, Outcome: r.Outcome, OrderID: r.OrderID}
}
