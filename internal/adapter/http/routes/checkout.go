package routes

import (
	"neurovita_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing     = "/ping"
	PathAuth     = "/auth"
	PathProducts = "/products"
	PathShipping = "/shipping"
	PathCheckout = "/checkout"
	PathOrders   = "/orders"
	PathPayments = "/payments"
	PathWebhooks = "/webhooks"
)

func addPingRoutes(rg *gin.RouterGroup, h *handlers.PingHandler) {
	rg.GET(PathPing, h.Ping)
}

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, admin gin.HandlerFunc) {
	authGroup := rg.Group(PathAuth)
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", admin, h.Me)
	}
}

func addCheckoutRoutes(rg *gin.RouterGroup, orders *handlers.OrderHandler, shipping *handlers.ShippingHandler, admin gin.HandlerFunc) {
	rg.GET(PathProducts+"/options", orders.ProductOptions)
	rg.GET(PathShipping+"/quote", shipping.Quote)
	rg.POST(PathCheckout+"/validate", orders.ValidateCheckout)

	orderGroup := rg.Group(PathOrders)
	{
		// public: the storefront creates orders and reads them back by id or order number
		orderGroup.POST("", orders.CreateOrder)
		orderGroup.GET("/:id", orders.GetOrder)

		// admin panel
		orderGroup.GET("", admin, orders.ListOrders)
		orderGroup.GET("/export", admin, orders.ExportOrders)
		orderGroup.PATCH("/:id/status", admin, orders.UpdateOrderStatus)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	pix := rg.Group(PathPayments + "/pix")
	{
		pix.POST("/generate", h.GeneratePix)
		pix.GET("/status/:orderId", h.PixStatus)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler, admin gin.HandlerFunc) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/orionpay", h.OrionPay)
		webhooks.GET("/orionpay/test", h.OrionPayTest)
		webhooks.POST("/orionpay/simulate-payment", admin, h.SimulatePayment)
		webhooks.POST("/mercadopago", h.MercadoPago)
	}
}
