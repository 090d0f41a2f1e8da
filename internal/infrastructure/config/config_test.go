package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("STRIPE_WEBHOOK_SECRETS", "whsec_new, whsec_old")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, StorageDynamoDB, cfg.StorageDriver)
	assert.Equal(t, GatewayStripe, cfg.Gateway.Provider)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, []string{"whsec_new", "whsec_old"}, cfg.Gateway.StripeWebhookSecrets)
	assert.Equal(t, []string{"card"}, cfg.Gateway.StripePaymentMethodTypes)
	assert.Contains(t, cfg.AllowedCurrencies, "JPY")
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PAYMENT_GATEWAY", "paypal")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "PAYMENT_GATEWAY")
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_MockGatewayNeedsNoKey(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Gateway.Mock)
}
