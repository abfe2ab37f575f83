package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"

	GatewayOrionPay    = "orionpay"
	GatewayMercadoPago = "mercadopago"

	MinPixExpirationMinutes = 5
	MaxPixExpirationMinutes = 120
)

var (
	ErrInvalidPixExpiration   = errors.New("PIX_EXPIRATION_MINUTES must be between 5 and 120")
	ErrMissingGatewayKey      = errors.New("gateway credentials are required when test mode is disabled")
	ErrMissingWebhookSecret   = errors.New("webhook secret is required in production")
	ErrUnknownGateway         = errors.New("unknown PIX_GATEWAY")
	ErrUnknownOrderStore      = errors.New("unknown ORDER_STORE")
	ErrTestModeInProduction   = errors.New("PAYMENTS_TEST_MODE cannot be enabled in production")
	ErrMissingPostgresDSN     = errors.New("DATABASE_URL is required when ORDER_STORE=postgres")
	ErrMissingAdminJWTSecret  = errors.New("JWT_SECRET is required")
	ErrInvalidShippingRegions = errors.New("SHIPPING_REGIONS references a region missing from SHIPPING_RATES")
)

// Config is loaded once at startup from the environment (.env is auto-loaded by main).
type Config struct {
	App      AppConfig
	Store    StoreConfig
	AWS      AWSConfig
	Payments PaymentsConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      string `envconfig:"APP_PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	// CORSOrigins lists the storefront origins allowed to call the API.
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsProd() bool { return strings.EqualFold(a.Env, AppEnvProd) }

type StoreConfig struct {
	Driver      string `envconfig:"ORDER_STORE" default:"dynamodb"`
	OrdersTable string `envconfig:"ORDERS_TABLE" default:"orders"`
	PostgresDSN string `envconfig:"DATABASE_URL"`
}

// AWSConfig mirrors the local-friendly DynamoDB settings.
type AWSConfig struct {
	Region           string `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKeyID      string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	SecretAccessKey  string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT"`
}

type PaymentsConfig struct {
	TestMode                 bool          `envconfig:"PAYMENTS_TEST_MODE" default:"true"`
	Gateway                  string        `envconfig:"PIX_GATEWAY" default:"orionpay"`
	PixExpirationMinutes     int           `envconfig:"PIX_EXPIRATION_MINUTES" default:"30"`
	GatewayTimeout           time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"8s"`
	PixKey                   string        `envconfig:"PIX_KEY" default:"pix@neurovita.com.br"`
	MerchantName             string        `envconfig:"PIX_MERCHANT_NAME" default:"NEUROVITA"`
	MerchantCity             string        `envconfig:"PIX_MERCHANT_CITY" default:"SAO PAULO"`
	OrionPayAPIURL           string        `envconfig:"ORIONPAY_API_URL" default:"https://payapi.orion.moe/api/v1"`
	OrionPayAPIKey           string        `envconfig:"ORIONPAY_API_KEY"`
	OrionPayWebhookSecret    string        `envconfig:"ORIONPAY_WEBHOOK_SECRET"`
	MercadoPagoAccessToken   string        `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	MercadoPagoWebhookSecret string        `envconfig:"MERCADOPAGO_WEBHOOK_SECRET"`
}

func (p PaymentsConfig) PixExpiration() time.Duration {
	return time.Duration(p.PixExpirationMinutes) * time.Minute
}

type AdminConfig struct {
	Email        string        `envconfig:"ADMIN_EMAIL" default:"admin@neurovita.com.br"`
	PasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `envconfig:"JWT_SECRET"`
	JWTIssuer    string        `envconfig:"JWT_ISSUER" default:"neurovita-checkout"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	DedupTTL time.Duration `envconfig:"WEBHOOK_DEDUP_TTL" default:"48h"`
}

type KafkaConfig struct {
	Brokers     []string `envconfig:"KAFKA_BROKERS"`
	OrdersTopic string   `envconfig:"KAFKA_ORDERS_TOPIC" default:"neurovita.orders"`
}

type CatalogConfig struct {
	ShippingRates  ShippingRates  `envconfig:"SHIPPING_RATES"`
	RegionByState  RegionByState  `envconfig:"SHIPPING_REGIONS"`
	ProductOptions ProductOptions `envconfig:"PRODUCT_OPTIONS"`
}

// ShippingRates decodes SHIPPING_RATES as JSON, e.g. {"sul":{"min":18.9,"max":25.9,"days":"4 a 6"}}.
type ShippingRates map[entities.Region]entities.RegionRate

func (r *ShippingRates) Decode(value string) error {
	out := map[entities.Region]entities.RegionRate{}
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return fmt.Errorf("decode SHIPPING_RATES: %w", err)
	}
	for region, rate := range out {
		if rate.Min < 0 || rate.Max < rate.Min {
			return fmt.Errorf("decode SHIPPING_RATES: invalid band for %s", region)
		}
	}
	*r = out
	return nil
}

// RegionByState decodes SHIPPING_REGIONS as JSON, e.g. {"SP":"sudeste"}.
type RegionByState map[string]entities.Region

func (m *RegionByState) Decode(value string) error {
	raw := map[string]entities.Region{}
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return fmt.Errorf("decode SHIPPING_REGIONS: %w", err)
	}
	out := make(map[string]entities.Region, len(raw))
	for uf, region := range raw {
		out[strings.ToUpper(strings.TrimSpace(uf))] = region
	}
	*m = out
	return nil
}

// ProductOptions decodes PRODUCT_OPTIONS as a JSON array of bundle tiers.
type ProductOptions []entities.ProductOption

func (p *ProductOptions) Decode(value string) error {
	var out []entities.ProductOption
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return fmt.Errorf("decode PRODUCT_OPTIONS: %w", err)
	}
	for _, o := range out {
		if o.ID <= 0 || o.Price < 0 {
			return fmt.Errorf("decode PRODUCT_OPTIONS: invalid option %d", o.ID)
		}
	}
	*p = out
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Catalog.ShippingRates) == 0 {
		c.Catalog.ShippingRates = DefaultShippingRates()
	}
	if len(c.Catalog.RegionByState) == 0 {
		c.Catalog.RegionByState = RegionByState(entities.DefaultRegionByState())
	}
	if len(c.Catalog.ProductOptions) == 0 {
		c.Catalog.ProductOptions = ProductOptions(entities.DefaultProductOptions())
	}
	c.Payments.Gateway = strings.ToLower(strings.TrimSpace(c.Payments.Gateway))
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
}

func DefaultShippingRates() ShippingRates {
	return ShippingRates(entities.DefaultShippingRates())
}

func (c *Config) Validate() error {
	p := c.Payments
	if p.PixExpirationMinutes < MinPixExpirationMinutes || p.PixExpirationMinutes > MaxPixExpirationMinutes {
		return ErrInvalidPixExpiration
	}
	switch p.Gateway {
	case GatewayOrionPay, GatewayMercadoPago:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGateway, p.Gateway)
	}
	switch c.Store.Driver {
	case StoreDynamoDB:
	case StorePostgres:
		if strings.TrimSpace(c.Store.PostgresDSN) == "" {
			return ErrMissingPostgresDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOrderStore, c.Store.Driver)
	}
	if !p.TestMode {
		if p.Gateway == GatewayOrionPay && p.OrionPayAPIKey == "" {
			return fmt.Errorf("%w: ORIONPAY_API_KEY", ErrMissingGatewayKey)
		}
		if p.Gateway == GatewayMercadoPago && p.MercadoPagoAccessToken == "" {
			return fmt.Errorf("%w: MERCADOPAGO_ACCESS_TOKEN", ErrMissingGatewayKey)
		}
	}
	if c.App.IsProd() {
		if p.TestMode {
			return ErrTestModeInProduction
		}
		if p.Gateway == GatewayOrionPay && p.OrionPayWebhookSecret == "" {
			return fmt.Errorf("%w: ORIONPAY_WEBHOOK_SECRET", ErrMissingWebhookSecret)
		}
		if p.Gateway == GatewayMercadoPago && p.MercadoPagoWebhookSecret == "" {
			return fmt.Errorf("%w: MERCADOPAGO_WEBHOOK_SECRET", ErrMissingWebhookSecret)
		}
	}
	if strings.TrimSpace(c.Admin.JWTSecret) == "" {
		return ErrMissingAdminJWTSecret
	}
	for uf, region := range c.Catalog.RegionByState {
		if _, ok := c.Catalog.ShippingRates[region]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidShippingRegions, uf, region)
		}
	}
	if _, ok := c.Catalog.ShippingRates[entities.DefaultRegion]; !ok {
		return fmt.Errorf("%w: default region %s", ErrInvalidShippingRegions, entities.DefaultRegion)
	}
	return nil
}
