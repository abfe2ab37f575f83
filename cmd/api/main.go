package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neurovita_checkout/internal/adapter/http/routes"
	"neurovita_checkout/internal/adapter/http/validators"
	"neurovita_checkout/internal/config"
	"neurovita_checkout/pkg/logger"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// @title           NeuroVita Checkout API
// @version         1.0
// @description     Checkout orders, shipping quotes, PIX payments and gateway webhooks.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Options{ServiceName: "neurovita-checkout"})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Options{
		ServiceName: "neurovita-checkout",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("checkout api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.RegisterCheckoutValidators(); err != nil {
		return err
	}

	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	router := routes.NewRouter(app.handlers, routes.Options{
		Log:            log,
		CORSOrigins:    cfg.App.CORSOrigins,
		Authenticator:  app.authenticator,
		HTTPObserver:   app.metrics,
		MetricsHandler: app.metricsHandler,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.App.Port).
			Str("env", cfg.App.Env).
			Str("store", cfg.Store.Driver).
			Str("gateway", app.gateway).
			Bool("test_mode", cfg.Payments.TestMode).
			Msg("checkout api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
