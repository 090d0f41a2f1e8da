package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// mercadoPagoPayments is the read side of payment.Client used here.
type mercadoPagoPayments interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type mercadoPagoPreferences interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPagoGateway opens a checkout preference per attempt. Payments made
// against the preference are reported later through notifications, each one
// keyed by its own payment id.
type MercadoPagoGateway struct {
	payments        mercadoPagoPayments
	preferences     mercadoPagoPreferences
	notificationURL string
}

var (
	_ interfaces.IPaymentGateway      = (*MercadoPagoGateway)(nil)
	_ interfaces.IPaymentMethodLookup = (*MercadoPagoGateway)(nil)
)

func NewMercadoPagoGateway(accessToken, publicBaseURL string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:        payment.NewClient(cfg),
		preferences:     preference.NewClient(cfg),
		notificationURL: notificationURL(publicBaseURL, entities.ProviderMercadoPago),
	}, nil
}

func notificationURL(publicBaseURL, provider string) string {
	if publicBaseURL == "" {
		return ""
	}
	return strings.TrimRight(publicBaseURL, "/") + "/v1/webhooks/" + provider
}

func (g *MercadoPagoGateway) Provider() string { return entities.ProviderMercadoPago }

func (g *MercadoPagoGateway) CreateAttempt(ctx context.Context, req interfaces.AttemptRequest) (entities.AttemptHandle, error) {
	if g == nil || g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.AttemptHandle{}, ErrMercadoPagoGatewayNotConfigured
	}
	currency := entities.NormalizeCurrency(req.Currency)
	unitPrice, _ := req.Amount.Float64()
	log.Printf("[payment][gateway] create preference start unique_id=%s amount=%s currency=%s", req.LinkToken, req.Amount.String(), currency)

	title := req.Description
	if title == "" {
		title = "Payment " + req.LinkToken
	}
	resp, err := g.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			ID:         req.LinkToken,
			Title:      title,
			Quantity:   1,
			UnitPrice:  unitPrice,
			CurrencyID: currency,
		}},
		ExternalReference: req.LinkToken,
		Metadata:          map[string]any{"payment_link_id": req.LinkToken},
		NotificationURL:   g.notificationURL,
	})
	if err != nil {
		log.Printf("[payment][gateway] sdk create preference failed unique_id=%s err=%v", req.LinkToken, err)
		return entities.AttemptHandle{}, mapMercadoPagoError(ctx, err)
	}

	log.Printf("[payment][gateway] create preference success unique_id=%s preference_id=%s", req.LinkToken, resp.ID)
	return entities.AttemptHandle{AttemptID: resp.ID, RedirectURL: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) LookupPaymentMethod(ctx context.Context, attempt entities.AttemptSnapshot) (string, error) {
	if attempt.PaymentMethod != "" {
		return attempt.PaymentMethod, nil
	}
	resp, err := g.getPayment(ctx, attempt.AttemptID)
	if err != nil {
		return "", err
	}
	if resp.PaymentTypeID == "" {
		return entities.PaymentMethodUnknown, nil
	}
	return resp.PaymentTypeID, nil
}

func (g *MercadoPagoGateway) getPayment(ctx context.Context, rawID string) (*payment.Response, error) {
	if g == nil || g.payments == nil {
		return nil, ErrMercadoPagoGatewayNotConfigured
	}
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return nil, fmt.Errorf("invalid mercado pago payment id %q: %w", rawID, err)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mercado pago payment %d: %w", id, err)
	}
	return resp, nil
}

func mapMercadoPagoError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return gatewayUnavailable(entities.ProviderMercadoPago, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return gatewayUnavailable(entities.ProviderMercadoPago, err)
	}
	return &interfaces.GatewayError{
		Provider: entities.ProviderMercadoPago,
		Code:     "preference_rejected",
		Message:  "The payment provider rejected the request",
		Err:      err,
	}
}
