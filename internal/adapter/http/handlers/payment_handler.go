package handlers

import (
	"net/http"
	"strings"
	"time"

	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var errMissingOrderID = pkg.NewDomainErrorSimple("MISSING_ORDER_ID", "order_id is required", http.StatusBadRequest)

// PaymentHandler issues PIX payloads and answers the payment page polling.
type PaymentHandler struct {
	usecase usecase.IPixUseCase
	log     zerolog.Logger

	now func() time.Time
}

func NewPaymentHandler(uc usecase.IPixUseCase, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		usecase: uc,
		log:     logger.Component(log, "pix", "handler"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GeneratePix godoc
// @Summary      Issue (or return the active) PIX for a pending order
// @Tags         payments
// @Produce      json
// @Param        order_id  query     string  true  "Order id or order number"
// @Success      200       {object}  response.PixResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Failure      502       {object}  pkg.HTTPError
// @Router       /payments/pix/generate [post]
func (h *PaymentHandler) GeneratePix(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)
	ref := strings.TrimSpace(c.Query("order_id"))
	if ref == "" {
		writeError(c, errMissingOrderID)
		return
	}

	pix, order, err := h.usecase.Generate(c.Request.Context(), ref)
	if err != nil {
		log.Warn().Err(err).Str("order_ref", ref).Msg("pix generation failed")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().
		Str("order_id", order.ID).
		Str("transaction_id", pix.TransactionID).
		Time("expires_at", pix.ExpiresAt).
		Msg("pix served")

	c.JSON(http.StatusOK, response.FromPixPayment(pix, order, h.now()))
}

// PixStatus godoc
// @Summary      Payment status polled by the payment page
// @Tags         payments
// @Produce      json
// @Param        orderId  path      string  true  "Order id or order number"
// @Success      200      {object}  response.PaymentStatusResponse
// @Failure      404      {object}  pkg.HTTPError
// @Router       /payments/pix/status/{orderId} [get]
func (h *PaymentHandler) PixStatus(c *gin.Context) {
	view, err := h.usecase.CheckStatus(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentStatus(view))
}
