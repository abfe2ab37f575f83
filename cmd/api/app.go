package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"neurovita_checkout/internal/adapter/http/handlers"
	"neurovita_checkout/internal/adapter/http/routes"
	"neurovita_checkout/internal/adapter/persistence/repository"
	"neurovita_checkout/internal/config"
	"neurovita_checkout/internal/infrastructure/cache"
	"neurovita_checkout/internal/infrastructure/database"
	"neurovita_checkout/internal/infrastructure/messaging"
	"neurovita_checkout/internal/infrastructure/metrics"
	"neurovita_checkout/internal/infrastructure/payments"
	"neurovita_checkout/internal/usecase"
	"neurovita_checkout/internal/usecase/interfaces"
	"neurovita_checkout/pkg/auth"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// app holds the wired dependencies and whatever must be closed on shutdown.
type app struct {
	handlers       routes.Handlers
	authenticator  usecase.IAuthUseCase
	metrics        *metrics.CheckoutMetrics
	metricsHandler http.Handler
	gateway        string

	closers []io.Closer
	log     zerolog.Logger
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn().Err(err).Msg("close failed")
		}
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{log: log}
	checks := map[string]handlers.HealthCheck{}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.NewCheckoutMetrics(reg)
	a.metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	repo, err := buildOrderStore(ctx, cfg, log, a, checks)
	if err != nil {
		a.Close()
		return nil, err
	}

	provider, lookup, err := buildPixProvider(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.gateway = provider.Name()

	var dedup interfaces.IWebhookDedup
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client)
		redisDedup := cache.NewRedisWebhookDedup(client, cfg.Redis.DedupTTL, log)
		dedup = redisDedup
		checks["redis"] = redisDedup.Ping
	} else {
		log.Warn().Msg("REDIS_ADDR not set, webhook dedup relies on order status only")
	}

	var publisher interfaces.IOrderEventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := messaging.NewKafkaOrderEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, kafkaPublisher)
		publisher = kafkaPublisher
	} else {
		publisher = messaging.NewLogOrderEventPublisher(log)
	}

	shippingUC := usecase.NewShippingUseCase(cfg.Catalog.ShippingRates, cfg.Catalog.RegionByState, nil, log)
	orderUC := usecase.NewOrderUseCase(repo, shippingUC, cfg.Catalog.ProductOptions, publisher, a.metrics, log)
	pixUC := usecase.NewPixUseCase(repo, provider, cfg.Payments.PixExpiration(), cfg.Payments.GatewayTimeout, a.metrics, log)
	webhookUC := usecase.NewWebhookUseCase(repo, dedup, lookup, publisher, a.metrics, usecase.WebhookConfig{
		OrionPaySecret:    cfg.Payments.OrionPayWebhookSecret,
		MercadoPagoSecret: cfg.Payments.MercadoPagoWebhookSecret,
		RequireSignature:  cfg.App.IsProd(),
	}, log)
	authUC := usecase.NewAuthUseCase(cfg.Admin.Email, cfg.Admin.PasswordHash, auth.TokenConfig{
		Secret: cfg.Admin.JWTSecret,
		Issuer: cfg.Admin.JWTIssuer,
		TTL:    cfg.Admin.JWTTTL,
	}, log)
	a.authenticator = authUC

	a.handlers = routes.Handlers{
		Ping:     handlers.NewPingHandler(checks),
		Orders:   handlers.NewOrderHandler(orderUC, log),
		Payments: handlers.NewPaymentHandler(pixUC, log),
		Webhooks: handlers.NewWebhookHandler(webhookUC, log),
		Shipping: handlers.NewShippingHandler(shippingUC),
		Auth:     handlers.NewAuthHandler(authUC, log),
	}
	return a, nil
}

func buildOrderStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, checks map[string]handlers.HealthCheck) (interfaces.IOrderRepository, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.Store.PostgresDSN, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		a.closers = append(a.closers, sqlDB)
		checks["database"] = sqlDB.PingContext
		if err := repository.MigrateOrders(db); err != nil {
			return nil, fmt.Errorf("migrate orders: %w", err)
		}
		return repository.NewOrderGormRepository(db), nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		// Local endpoints (dynamodb-local, localstack) start empty.
		if cfg.AWS.DynamoDBEndpoint != "" {
			if err := database.EnsureOrdersTable(ctx, ddb, cfg.Store.OrdersTable, log); err != nil {
				return nil, err
			}
		}
		return repository.NewOrderDynamoRepository(ddb, cfg.Store.OrdersTable), nil
	}
}

// buildPixProvider picks the PIX issuer once at startup. Only Mercado Pago can look payments up.
func buildPixProvider(cfg *config.Config, log zerolog.Logger) (interfaces.IPixProvider, interfaces.IPaymentLookup, error) {
	p := cfg.Payments
	if p.TestMode {
		log.Warn().Msg("PAYMENTS_TEST_MODE enabled, PIX codes are generated locally and never settle")
		return payments.NewTestPixProvider(p.PixKey, p.MerchantName, p.MerchantCity, log), nil, nil
	}
	switch p.Gateway {
	case config.GatewayMercadoPago:
		mp, err := payments.NewMercadoPagoGateway(p.MercadoPagoAccessToken, log)
		if err != nil {
			return nil, nil, err
		}
		return mp, mp, nil
	default:
		orion, err := payments.NewOrionPayPixProvider(p.OrionPayAPIURL, p.OrionPayAPIKey, p.GatewayTimeout, log)
		if err != nil {
			return nil, nil, err
		}
		return orion, nil, nil
	}
}
