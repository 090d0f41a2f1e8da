package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/infrastructure/config"
	"dealflow/internal/infrastructure/payments"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"id":"evt_local","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestRunSignEvent_Stripe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePayload), 0o600))

	cmd, out := newTestCmd()
	err := runSignEvent(cmd, []string{path}, signEventOptions{provider: entities.ProviderStripe, secret: "whsec_local"}, time.Now())
	require.NoError(t, err)

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, payments.StripeSignatureHeader+": "), line)

	headers := http.Header{}
	headers.Set(payments.StripeSignatureHeader, strings.TrimPrefix(line, payments.StripeSignatureHeader+": "))
	verifier := payments.NewStripeNotificationVerifier([]string{"whsec_local"}, 0)
	event, err := verifier.Verify(context.Background(), entities.InboundNotification{Provider: entities.ProviderStripe, Body: []byte(samplePayload), Headers: headers})
	require.NoError(t, err)
	assert.Equal(t, entities.EventKindIgnored, event.Kind)
}

func TestRunSignEvent_StripeFromStdin(t *testing.T) {
	cmd, out := newTestCmd()
	cmd.SetIn(strings.NewReader(samplePayload))
	require.NoError(t, runSignEvent(cmd, []string{"-"}, signEventOptions{provider: entities.ProviderStripe, secret: "s"}, time.Now()))
	assert.Contains(t, out.String(), "v1=")
}

func TestRunSignEvent_SecretFromEnv(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRETS", " , whsec_env")
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePayload), 0o600))

	cmd, _ := newTestCmd()
	assert.NoError(t, runSignEvent(cmd, []string{path}, signEventOptions{provider: entities.ProviderStripe}, time.Now()))
}

func TestRunSignEvent_MercadoPago(t *testing.T) {
	at := time.Unix(1700000000, 0)
	cmd, out := newTestCmd()
	err := runSignEvent(cmd, nil, signEventOptions{provider: entities.ProviderMercadoPago, secret: "mp", dataID: "123", requestID: "req-1"}, at)
	require.NoError(t, err)

	want := payments.MercadoPagoSignatureHeader + ": " + payments.SignMercadoPagoNotification("mp", "123", "req-1", at) + "\n" +
		payments.MercadoPagoRequestIDHeader + ": req-1\n"
	assert.Equal(t, want, out.String())
}

func TestRunSignEvent_Errors(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRETS", "")
	t.Setenv("MERCADOPAGO_WEBHOOK_SECRET", "")

	tests := []struct {
		name string
		args []string
		opts signEventOptions
	}{
		{"stripe without secret", []string{"x"}, signEventOptions{provider: entities.ProviderStripe}},
		{"stripe without payload", nil, signEventOptions{provider: entities.ProviderStripe, secret: "s"}},
		{"stripe missing file", []string{filepath.Join(t.TempDir(), "nope.json")}, signEventOptions{provider: entities.ProviderStripe, secret: "s"}},
		{"mercadopago without data id", nil, signEventOptions{provider: entities.ProviderMercadoPago, secret: "s"}},
		{"mercadopago without secret", nil, signEventOptions{provider: entities.ProviderMercadoPago, dataID: "1"}},
		{"unknown provider", nil, signEventOptions{provider: "paypal", secret: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCmd()
			assert.Error(t, runSignEvent(cmd, tt.args, tt.opts, time.Now()))
		})
	}
}

func TestRunMigrate(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runMigrate(context.Background(), cmd, &config.Config{StorageDriver: config.StorageMemory}))
	assert.Contains(t, out.String(), "no migration")

	assert.Error(t, runMigrate(context.Background(), cmd, &config.Config{StorageDriver: config.StoragePostgres}))
	assert.Error(t, runMigrate(context.Background(), cmd, &config.Config{StorageDriver: "sqlite"}))
}
