package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	GatewayStripe      = "stripe"
	GatewayMercadoPago = "mercadopago"
)

// Config is loaded once at startup and handed to every constructor.
type Config struct {
	HTTPPort          int
	PublicBaseURL     string
	StorageDriver     string
	DatabaseURL       string
	AllowedCurrencies []string

	AWS     AWSConfig
	Gateway GatewayConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
	LinksTable       string
	AttemptsTable    string
}

type GatewayConfig struct {
	Provider string
	Mock     bool
	Timeout  time.Duration

	StripeSecretKey          string
	StripeWebhookSecrets     []string
	StripeWebhookTolerance   time.Duration
	StripePaymentMethodTypes []string

	MercadoPagoAccessToken      string
	MercadoPagoWebhookSecret    string
	MercadoPagoWebhookTolerance time.Duration
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

type RedisConfig struct {
	URL              string
	PaymentMethodTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("STORAGE_DRIVER", StorageDynamoDB)
	v.SetDefault("ALLOWED_CURRENCIES", "USD,EUR,GBP,INR,AUD,CAD,CHF,JPY,NZD,SGD")

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("PAYMENT_LINKS_TABLE", "payment_links")
	v.SetDefault("PAYMENT_ATTEMPTS_TABLE", "payment_attempts")

	v.SetDefault("PAYMENT_GATEWAY", GatewayStripe)
	v.SetDefault("PAYMENT_GATEWAY_MOCK", "")
	v.SetDefault("GATEWAY_TIMEOUT", "5s")
	v.SetDefault("STRIPE_WEBHOOK_TOLERANCE", "5m")
	v.SetDefault("STRIPE_PAYMENT_METHOD_TYPES", "card")
	v.SetDefault("MERCADOPAGO_WEBHOOK_TOLERANCE", "5m")

	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("PAYMENT_METHOD_CACHE_TTL", "24h")
	v.SetDefault("KAFKA_TOPIC", "payments.attempt-reconciled")
}

// Load reads configuration from the environment. .env files are loaded by the
// binaries before calling it.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for operator commands that only need a
// subset of the keys.
func Read() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		HTTPPort:          v.GetInt("HTTP_PORT"),
		PublicBaseURL:     strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		StorageDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		AllowedCurrencies: splitList(strings.ToUpper(v.GetString("ALLOWED_CURRENCIES"))),
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
			LinksTable:       v.GetString("PAYMENT_LINKS_TABLE"),
			AttemptsTable:    v.GetString("PAYMENT_ATTEMPTS_TABLE"),
		},
		Gateway: GatewayConfig{
			Provider:                    strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_GATEWAY"))),
			Mock:                        truthy(v.GetString("PAYMENT_GATEWAY_MOCK")),
			Timeout:                     v.GetDuration("GATEWAY_TIMEOUT"),
			StripeSecretKey:             v.GetString("STRIPE_SECRET_KEY"),
			StripeWebhookSecrets:        splitList(v.GetString("STRIPE_WEBHOOK_SECRETS")),
			StripeWebhookTolerance:      v.GetDuration("STRIPE_WEBHOOK_TOLERANCE"),
			StripePaymentMethodTypes:    splitList(v.GetString("STRIPE_PAYMENT_METHOD_TYPES")),
			MercadoPagoAccessToken:      v.GetString("MERCADOPAGO_ACCESS_TOKEN"),
			MercadoPagoWebhookSecret:    v.GetString("MERCADOPAGO_WEBHOOK_SECRET"),
			MercadoPagoWebhookTolerance: v.GetDuration("MERCADOPAGO_WEBHOOK_TOLERANCE"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer: v.GetString("AUTH_JWT_ISSUER"),
		},
		Redis: RedisConfig{
			URL:              v.GetString("REDIS_URL"),
			PaymentMethodTTL: v.GetDuration("PAYMENT_METHOD_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.Gateway.Provider {
	case GatewayStripe:
		if !c.Gateway.Mock && c.Gateway.StripeSecretKey == "" {
			errs = append(errs, errors.New("STRIPE_SECRET_KEY is required"))
		}
	case GatewayMercadoPago:
		if !c.Gateway.Mock && c.Gateway.MercadoPagoAccessToken == "" {
			errs = append(errs, errors.New("MERCADOPAGO_ACCESS_TOKEN is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PAYMENT_GATEWAY %q", c.Gateway.Provider))
	}

	if c.Gateway.Timeout <= 0 {
		errs = append(errs, errors.New("GATEWAY_TIMEOUT must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
