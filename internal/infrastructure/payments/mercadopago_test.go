package payments

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMPPayments struct {
	resp  *payment.Response
	err   error
	calls int
}

func (f *fakeMPPayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r := *f.resp
	r.ID = id
	return &r, nil
}

type fakeMPPreferences struct {
	req preference.Request
	err error
}

func (f *fakeMPPreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &preference.Response{ID: "pref_1", InitPoint: "https://mp.example/checkout/pref_1"}, nil
}

func mpNotification(secret, dataID, requestID string, at time.Time) entities.InboundNotification {
	h := http.Header{}
	h.Set(MercadoPagoRequestIDHeader, requestID)
	h.Set(MercadoPagoSignatureHeader, SignMercadoPagoNotification(secret, dataID, requestID, at))
	return entities.InboundNotification{
		Provider: entities.ProviderMercadoPago,
		Body:     []byte(`{"id":12345,"type":"payment","action":"payment.updated","data":{"id":"` + dataID + `"}}`),
		Headers:  h,
		Query:    url.Values{"data.id": []string{dataID}, "type": []string{"payment"}},
	}
}

func newTestMPVerifier(p *fakeMPPayments, now time.Time) *MercadoPagoNotificationVerifier {
	v := NewMercadoPagoNotificationVerifier("mp_secret", 5*time.Minute, &MercadoPagoGateway{payments: p})
	v.now = func() time.Time { return now }
	return v
}

func TestMercadoPagoVerifier_Approved(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &fakeMPPayments{resp: &payment.Response{
		Status:            "approved",
		PaymentMethodID:   "visa",
		PaymentTypeID:     "credit_card",
		CurrencyID:        "BRL",
		TransactionAmount: 150.5,
		ExternalReference: "tok123",
	}}
	v := newTestMPVerifier(p, now)

	ev, err := v.Verify(context.Background(), mpNotification("mp_secret", "987", "req-1", now.Add(-time.Minute)))
	require.NoError(t, err)

	assert.Equal(t, entities.EventKindAttemptSucceeded, ev.Kind)
	assert.Equal(t, "mp_987_approved", ev.ID)
	assert.Equal(t, "987", ev.Attempt.AttemptID)
	assert.Equal(t, "tok123", ev.Attempt.LinkToken)
	assert.Equal(t, int64(15050), ev.Attempt.AmountMinor)
	assert.Equal(t, "credit_card", ev.Attempt.PaymentMethod)
	assert.Equal(t, "visa", ev.Attempt.PaymentMethodRef)
	assert.Equal(t, 1, p.calls)
}

func TestMercadoPagoVerifier_EventIDKeyedOnPaymentAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &fakeMPPayments{resp: &payment.Response{Status: "approved", ExternalReference: "tok123", CurrencyID: "BRL", TransactionAmount: 1}}
	v := newTestMPVerifier(p, now)

	created := mpNotification("mp_secret", "987", "req-1", now)
	created.Body = []byte(`{"id":111,"type":"payment","action":"payment.created","data":{"id":"987"}}`)
	updated := mpNotification("mp_secret", "987", "req-2", now)
	updated.Body = []byte(`{"id":222,"type":"payment","action":"payment.updated","data":{"id":"987"}}`)

	first, err := v.Verify(context.Background(), created)
	require.NoError(t, err)
	second, err := v.Verify(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, "mp_987_approved", first.ID)
	assert.Equal(t, first.ID, second.ID)

	p.resp = &payment.Response{Status: "rejected", ExternalReference: "tok123", CurrencyID: "BRL", TransactionAmount: 1}
	rejected, err := v.Verify(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, "mp_987_rejected", rejected.ID)
}

func TestMercadoPagoVerifier_Rejected(t *testing.T) {
	now := time.Now()
	p := &fakeMPPayments{resp: &payment.Response{
		Status:            "rejected",
		StatusDetail:      "cc_rejected_insufficient_amount",
		CurrencyID:        "BRL",
		TransactionAmount: 10,
		Metadata:          map[string]any{"payment_link_id": "tok9"},
	}}
	v := newTestMPVerifier(p, now)

	ev, err := v.Verify(context.Background(), mpNotification("mp_secret", "55", "req-2", now))
	require.NoError(t, err)
	assert.Equal(t, entities.EventKindAttemptFailed, ev.Kind)
	assert.Equal(t, "tok9", ev.Attempt.LinkToken)
	require.NotNil(t, ev.Attempt.LastError)
	assert.Equal(t, "cc_rejected_insufficient_amount", ev.Attempt.LastError.Code)
}

func TestMercadoPagoVerifier_RejectsBadSignature(t *testing.T) {
	now := time.Now()
	p := &fakeMPPayments{resp: &payment.Response{Status: "approved"}}
	v := newTestMPVerifier(p, now)

	cases := map[string]entities.InboundNotification{
		"forged secret":     mpNotification("other", "1", "req", now),
		"outside tolerance": mpNotification("mp_secret", "1", "req", now.Add(-time.Hour)),
	}
	missing := mpNotification("mp_secret", "1", "req", now)
	missing.Headers.Del(MercadoPagoSignatureHeader)
	cases["missing header"] = missing

	swapped := mpNotification("mp_secret", "1", "req", now)
	swapped.Query.Set("data.id", "2")
	cases["different resource"] = swapped

	for name, n := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), n)
			require.ErrorIs(t, err, interfaces.ErrNotificationAuthentication)
		})
	}
	assert.Equal(t, 0, p.calls)
}

func TestMercadoPagoVerifier_IgnoresOtherTopics(t *testing.T) {
	now := time.Now()
	p := &fakeMPPayments{resp: &payment.Response{}}
	v := newTestMPVerifier(p, now)

	n := mpNotification("mp_secret", "77", "req", now)
	n.Body = []byte(`{"id":1,"type":"merchant_order","data":{"id":"77"}}`)
	n.Query.Set("type", "merchant_order")

	ev, err := v.Verify(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, entities.EventKindIgnored, ev.Kind)
	assert.Equal(t, 0, p.calls)
}

func TestMercadoPagoGateway_CreateAttempt(t *testing.T) {
	prefs := &fakeMPPreferences{}
	gw := &MercadoPagoGateway{preferences: prefs, notificationURL: notificationURL("https://pay.example/", entities.ProviderMercadoPago)}

	handle, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{
		LinkToken:   "tok123",
		Amount:      decimal.RequireFromString("99.90"),
		Currency:    "brl",
		Description: "Consulting",
	})
	require.NoError(t, err)

	assert.Equal(t, "pref_1", handle.AttemptID)
	assert.Equal(t, "https://mp.example/checkout/pref_1", handle.RedirectURL)
	assert.Equal(t, "tok123", prefs.req.ExternalReference)
	assert.Equal(t, "https://pay.example/v1/webhooks/mercadopago", prefs.req.NotificationURL)
	require.Len(t, prefs.req.Items, 1)
	assert.Equal(t, "BRL", prefs.req.Items[0].CurrencyID)
	assert.InDelta(t, 99.90, prefs.req.Items[0].UnitPrice, 0.001)
}

func TestMercadoPagoGateway_CreateAttempt_Errors(t *testing.T) {
	gw := &MercadoPagoGateway{preferences: &fakeMPPreferences{err: errors.New("invalid currency")}}
	_, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{LinkToken: "t", Amount: decimal.NewFromInt(1), Currency: "USD"})

	var gwErr *interfaces.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, entities.ProviderMercadoPago, gwErr.Provider)

	_, err = (&MercadoPagoGateway{}).CreateAttempt(context.Background(), interfaces.AttemptRequest{})
	require.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}

func TestMercadoPagoGateway_CreateAttempt_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "deadline", err: context.DeadlineExceeded},
		{name: "wrapped deadline", err: fmt.Errorf("post preference: %w", context.DeadlineExceeded)},
		{name: "network", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &MercadoPagoGateway{preferences: &fakeMPPreferences{err: tt.err}}
			_, err := gw.CreateAttempt(context.Background(), interfaces.AttemptRequest{LinkToken: "t", Amount: decimal.NewFromInt(1), Currency: "BRL"})

			var gwErr *interfaces.GatewayError
			require.True(t, errors.As(err, &gwErr), "got %v", err)
			assert.Equal(t, GatewayUnavailableCode, gwErr.Code)
			assert.Equal(t, GatewayUnavailableMessage, gwErr.Message)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMercadoPagoGateway_LookupPaymentMethod(t *testing.T) {
	p := &fakeMPPayments{resp: &payment.Response{PaymentTypeID: "account_money"}}
	gw := &MercadoPagoGateway{payments: p}

	method, err := gw.LookupPaymentMethod(context.Background(), entities.AttemptSnapshot{AttemptID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "account_money", method)

	_, err = gw.LookupPaymentMethod(context.Background(), entities.AttemptSnapshot{AttemptID: "pi_x"})
	require.Error(t, err)
}
