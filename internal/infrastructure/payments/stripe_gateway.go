package payments

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

const (
	GatewayUnavailableCode    = "gateway_unavailable"
	GatewayUnavailableMessage = "payment gateway unavailable"
)

func gatewayUnavailable(provider string, err error) *interfaces.GatewayError {
	return &interfaces.GatewayError{
		Provider: provider,
		Code:     GatewayUnavailableCode,
		Message:  GatewayUnavailableMessage,
		Err:      err,
	}
}

// StripeGateway opens PaymentIntents and looks up the method used by a charge.
type StripeGateway struct {
	api                *client.API
	paymentMethodTypes []string
}

var (
	_ interfaces.IPaymentGateway      = (*StripeGateway)(nil)
	_ interfaces.IPaymentMethodLookup = (*StripeGateway)(nil)
)

// NewStripeBackends builds backends without network retries; timeout and the
// caller's context deadline bound every call.
func NewStripeBackends(timeout time.Duration, apiURL string) *stripe.Backends {
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if apiURL != "" {
		cfg.URL = stripe.String(apiURL)
	}
	return stripe.NewBackendsWithConfig(cfg)
}

func NewStripeGateway(secretKey string, paymentMethodTypes []string, backends *stripe.Backends) (*StripeGateway, error) {
	if secretKey == "" {
		log.Printf("[payment][stripe] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	if len(paymentMethodTypes) == 0 {
		paymentMethodTypes = []string{"card"}
	}
	log.Printf("[payment][stripe] client initialized payment_method_types=%s", strings.Join(paymentMethodTypes, ","))
	return &StripeGateway{api: client.New(secretKey, backends), paymentMethodTypes: paymentMethodTypes}, nil
}

func (g *StripeGateway) Provider() string { return entities.ProviderStripe }

func (g *StripeGateway) CreateAttempt(ctx context.Context, req interfaces.AttemptRequest) (entities.AttemptHandle, error) {
	currency := strings.ToLower(entities.NormalizeCurrency(req.Currency))
	amount := entities.ToMinorUnits(req.Amount, req.Currency)
	log.Printf("[payment][stripe] create intent start unique_id=%s amount_minor=%d currency=%s", req.LinkToken, amount, currency)

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(g.paymentMethodTypes),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	params.AddMetadata("payment_link_id", req.LinkToken)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("[payment][stripe] create intent failed unique_id=%s err=%v", req.LinkToken, err)
		return entities.AttemptHandle{}, mapStripeError(err)
	}

	log.Printf("[payment][stripe] create intent success unique_id=%s attempt_id=%s", req.LinkToken, pi.ID)
	return entities.AttemptHandle{AttemptID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// LookupPaymentMethod reads the latest charge of the intent and returns its
// payment_method_details.type.
func (g *StripeGateway) LookupPaymentMethod(ctx context.Context, attempt entities.AttemptSnapshot) (string, error) {
	if attempt.LatestChargeRef == "" {
		return entities.PaymentMethodUnknown, nil
	}
	ch, err := g.api.Charges.Get(attempt.LatestChargeRef, &stripe.ChargeParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return "", mapStripeError(err)
	}
	if ch.PaymentMethodDetails == nil || ch.PaymentMethodDetails.Type == "" {
		return entities.PaymentMethodUnknown, nil
	}
	return string(ch.PaymentMethodDetails.Type), nil
}

// mapStripeError wraps every failure in a *GatewayError. Errors reported by
// Stripe keep their message; transport failures and timeouts get a fixed one.
func mapStripeError(err error) error {
	var se *stripe.Error
	if !errors.As(err, &se) {
		return gatewayUnavailable(entities.ProviderStripe, err)
	}
	code := string(se.Code)
	if code == "" {
		code = string(se.Type)
	}
	msg := se.Msg
	if msg == "" {
		msg = GatewayUnavailableMessage
	}
	return &interfaces.GatewayError{
		Provider: entities.ProviderStripe,
		Code:     code,
		Message:  msg,
		Err:      err,
	}
}
