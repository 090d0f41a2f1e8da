package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStripeGateway(t *testing.T, handler http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := NewStripeGateway("sk_test_123", nil, NewStripeBackends(2*time.Second, srv.URL))
	require.NoError(t, err)
	return gw
}

func TestNewStripeGateway_MissingKey(t *testing.T) {
	_, err := NewStripeGateway("", nil, NewStripeBackends(time.Second, ""))
	require.ErrorIs(t, err, ErrMissingStripeSecretKey)
}

func TestStripeGateway_CreateAttempt(t *testing.T) {
	var form url.Values
	gw := newTestStripeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseForm()
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","client_secret":"pi_123_secret_abc"}`))
	})

	handle, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok123",
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", handle.AttemptID)
	assert.Equal(t, "pi_123_secret_abc", handle.ClientSecret)
	assert.Equal(t, "10000", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "tok123", form.Get("metadata[payment_link_id]"))
}

func TestStripeGateway_CreateAttempt_ZeroDecimal(t *testing.T) {
	var amount string
	gw := newTestStripeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		amount = r.PostForm.Get("amount")
		_, _ = w.Write([]byte(`{"id":"pi_jpy","client_secret":"s"}`))
	})

	_, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok",
		Amount:    decimal.RequireFromString("500"),
		Currency:  "JPY",
	})
	require.NoError(t, err)
	assert.Equal(t, "500", amount)
}

func TestStripeGateway_CreateAttempt_ProviderError(t *testing.T) {
	calls := 0
	gw := newTestStripeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"amount_too_small","message":"Amount must be at least $0.50 usd","type":"invalid_request_error"}}`))
	})

	_, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok",
		Amount:    decimal.RequireFromString("0.10"),
		Currency:  "USD",
	})

	var gwErr *interfaces.GatewayError
	require.True(t, errors.As(err, &gwErr), "got %v", err)
	assert.Equal(t, "amount_too_small", gwErr.Code)
	assert.Equal(t, "Amount must be at least $0.50 usd", gwErr.Message)
	assert.Equal(t, 1, calls)
}

func TestStripeGateway_CreateAttempt_ServerErrorNotRetried(t *testing.T) {
	calls := 0
	gw := newTestStripeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Stripe is down","type":"api_error"}}`))
	})

	_, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok",
		Amount:    decimal.RequireFromString("1.00"),
		Currency:  "USD",
	})
	require.Error(t, err)

	var gwErr *interfaces.GatewayError
	require.True(t, errors.As(err, &gwErr), "got %v", err)
	assert.Equal(t, entities.ProviderStripe, gwErr.Provider)
	assert.Equal(t, "api_error", gwErr.Code)
	assert.Equal(t, "Stripe is down", gwErr.Message)
	assert.Equal(t, 1, calls)
}

func TestStripeGateway_CreateAttempt_Unavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	gw, err := NewStripeGateway("sk_test_123", nil, NewStripeBackends(50*time.Millisecond, srv.URL))
	require.NoError(t, err)

	_, err = gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok",
		Amount:    decimal.RequireFromString("1.00"),
		Currency:  "USD",
	})

	var gwErr *interfaces.GatewayError
	require.True(t, errors.As(err, &gwErr), "got %v", err)
	assert.Equal(t, GatewayUnavailableCode, gwErr.Code)
	assert.Equal(t, GatewayUnavailableMessage, gwErr.Message)
	assert.NotContains(t, gwErr.Message, srv.URL)
}

func TestStripeGateway_CreateAttempt_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	gw, err := NewStripeGateway("sk_test_123", nil, NewStripeBackends(time.Second, addr))
	require.NoError(t, err)

	_, err = gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken: "tok",
		Amount:    decimal.RequireFromString("1.00"),
		Currency:  "USD",
	})

	var gwErr *interfaces.GatewayError
	require.True(t, errors.As(err, &gwErr), "got %v", err)
	assert.Equal(t, GatewayUnavailableMessage, gwErr.Message)
}

func TestStripeGateway_LookupPaymentMethod(t *testing.T) {
	gw := newTestStripeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/charges/ch_1" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":"ch_1","object":"charge","payment_method_details":{"type":"card","card":{"brand":"visa","last4":"4242"}}}`))
	})

	method, err := gw.LookupPaymentMethod(context.Background(), entities.AttemptSnapshot{AttemptID: "pi_1", LatestChargeRef: "ch_1"})
	require.NoError(t, err)
	assert.Equal(t, "card", method)

	method, err = gw.LookupPaymentMethod(context.Background(), entities.AttemptSnapshot{AttemptID: "pi_1"})
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentMethodUnknown, method)
}
