package handlers

import (
	"net/http"

	"neurovita_checkout/internal/adapter/http/dto/request"
	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderHandler serves checkout order creation, lookup and the admin order panel.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
	log     zerolog.Logger
}

func NewOrderHandler(uc usecase.IOrderUseCase, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{usecase: uc, log: logger.Component(log, "order", "handler")}
}

// CreateOrder godoc
// @Summary      Create a checkout order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Checkout form"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Info().Err(err).Msg("create order rejected by binding")
		writeError(c, bindingError(err))
		return
	}

	order, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Info().Err(err).Str("email", payload.Email).Msg("create order failed")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("order created")

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder godoc
// @Summary      Get an order by id or order number
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id or order number"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListOrders godoc
// @Summary      List orders for the admin panel
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        status  query     string  false  "all|pending|paid|shipped|delivered"
// @Param        sort    query     string  false  "newest|oldest"
// @Success      200     {array}   response.OrderResponse
// @Failure      400     {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.usecase.List(c.Request.Context(), c.Query("status"), c.Query("sort"))
	if err != nil {
		writeError(c, mapDomainError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// UpdateOrderStatus godoc
// @Summary      Move an order forward in its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id      path      string                            true  "Order id or order number"
// @Param        status  body      request.UpdateOrderStatusRequest  true  "Target status"
// @Success      200     {object}  response.OrderResponse
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.log)
	ref := c.Param("id")

	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, bindingError(err))
		return
	}

	order, err := h.usecase.UpdateStatus(c.Request.Context(), ref, payload.Target(), payload.TrackingCode)
	if err != nil {
		log.Warn().Err(err).Str("order_ref", ref).Str("status", payload.Status).Msg("status update failed")
		writeError(c, mapDomainError(err))
		return
	}
	log.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Msg("status updated")

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ProductOptions godoc
// @Summary      List the bundle tiers offered at checkout
// @Tags         products
// @Produce      json
// @Success      200  {array}  response.ProductOptionResponse
// @Router       /products/options [get]
func (h *OrderHandler) ProductOptions(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromProductOptions(h.usecase.ProductOptions(c.Request.Context())))
}

// ValidateCheckout godoc
// @Summary      Pre-submit customer validation
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        customer  body      request.ValidateCheckoutRequest  true  "Customer fields"
// @Success      200       {object}  response.CheckoutValidationResponse
// @Failure      400       {object}  response.CheckoutValidationResponse
// @Router       /checkout/validate [post]
func (h *OrderHandler) ValidateCheckout(c *gin.Context) {
	var payload request.ValidateCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	if err := h.usecase.ValidateCustomer(c.Request.Context(), payload.ToInput()); err != nil {
		appErr := mapDomainError(err)
		if appErr.HTTPStatus != http.StatusBadRequest {
			writeError(c, appErr)
			return
		}
		c.JSON(http.StatusBadRequest, response.CheckoutValidationResponse{Valid: false, Errors: appErr.Details})
		return
	}
	c.JSON(http.StatusOK, response.CheckoutValidationResponse{Valid: true})
}

func statusLabel(s entities.OrderStatus) string {
	switch s {
	case entities.OrderStatusPending:
		return "Aguardando pagamento"
	case entities.OrderStatusPaid:
		return "Pago"
	case entities.OrderStatusShipped:
		return "Enviado"
	case entities.OrderStatusDelivered:
		return "Entregue"
	}
	return string(s)
}
