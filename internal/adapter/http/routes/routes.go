package routes

import (
	"net/http"

	_ "neurovita_checkout/docs" // swagger spec
	"neurovita_checkout/internal/adapter/http/handlers"
	"neurovita_checkout/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathAPIVersion = "/v1"
	PathSwagger    = "/swagger/*any"
	PathMetrics    = "/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Ping     *handlers.PingHandler
	Orders   *handlers.OrderHandler
	Payments *handlers.PaymentHandler
	Webhooks *handlers.WebhookHandler
	Shipping *handlers.ShippingHandler
	Auth     *handlers.AuthHandler
}

type Options struct {
	Log           zerolog.Logger
	CORSOrigins   []string
	Authenticator middleware.TokenAuthenticator
	// HTTPObserver and MetricsHandler are optional; without them /metrics is not mounted.
	HTTPObserver   middleware.HTTPObserver
	MetricsHandler http.Handler
}

// NewRouter builds the gin engine with the middleware chain and every checkout route.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, opts)

	router.GET(PathSwagger, ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.MetricsHandler != nil {
		router.GET(PathMetrics, gin.WrapH(opts.MetricsHandler))
	}

	admin := middleware.AdminAuth(opts.Authenticator, opts.Log)

	v1 := router.Group(PathAPIVersion)
	addPingRoutes(v1, h.Ping)
	addAuthRoutes(v1, h.Auth, admin)
	addCheckoutRoutes(v1, h.Orders, h.Shipping, admin)
	addPaymentRoutes(v1, h.Payments)
	addWebhookRoutes(v1, h.Webhooks, admin)

	return router
}

func setMiddlewares(router *gin.Engine, opts Options) {
	router.Use(middleware.Recovery(opts.Log))
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.CORS(opts.CORSOrigins))
	if opts.HTTPObserver != nil {
		router.Use(middleware.Metrics(opts.HTTPObserver))
	}
}
