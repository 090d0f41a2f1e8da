package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const StripeSignatureHeader = "Stripe-Signature"

// StripeNotificationVerifier checks Stripe-Signature against every configured
// signing secret, so a rotated secret keeps working until it is removed.
type StripeNotificationVerifier struct {
	secrets   []string
	tolerance time.Duration
}

var _ interfaces.INotificationVerifier = (*StripeNotificationVerifier)(nil)

func NewStripeNotificationVerifier(secrets []string, tolerance time.Duration) *StripeNotificationVerifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &StripeNotificationVerifier{secrets: secrets, tolerance: tolerance}
}

func (v *StripeNotificationVerifier) Verify(_ context.Context, n entities.InboundNotification) (entities.GatewayEvent, error) {
	header := n.Headers.Get(StripeSignatureHeader)
	if header == "" {
		return entities.GatewayEvent{}, fmt.Errorf("%w: %w", interfaces.ErrNotificationAuthentication, webhook.ErrNotSigned)
	}
	if len(v.secrets) == 0 {
		return entities.GatewayEvent{}, fmt.Errorf("%w: no signing secret configured", interfaces.ErrNotificationAuthentication)
	}

	var (
		event stripe.Event
		err   error
	)
	for _, secret := range v.secrets {
		event, err = webhook.ConstructEventWithOptions(n.Body, header, secret, webhook.ConstructEventOptions{
			Tolerance:                v.tolerance,
			IgnoreAPIVersionMismatch: true,
		})
		if err == nil || !errors.Is(err, webhook.ErrNoValidSignature) {
			break
		}
	}
	if err != nil {
		if isSignatureError(err) {
			log.Printf("[webhook][stripe] signature rejected err=%v", err)
			return entities.GatewayEvent{}, fmt.Errorf("%w: %w", interfaces.ErrNotificationAuthentication, err)
		}
		return entities.GatewayEvent{}, fmt.Errorf("parse stripe event: %w", err)
	}

	return parseStripeEvent(event)
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrTooOld)
}

// stripeIntentObject is the subset of a PaymentIntent the reconciler consumes.
// Expandable fields arrive either as an id or as an object.
type stripeIntentObject struct {
	ID               string            `json:"id"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Metadata         map[string]string `json:"metadata"`
	PaymentMethod    expandable        `json:"payment_method"`
	Customer         expandable        `json:"customer"`
	LatestCharge     expandable        `json:"latest_charge"`
	LastPaymentError *struct {
		Code          string `json:"code"`
		Message       string `json:"message"`
		Type          string `json:"type"`
		DeclineCode   string `json:"decline_code"`
		PaymentMethod *struct {
			Type           string `json:"type"`
			BillingDetails struct {
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"billing_details"`
		} `json:"payment_method"`
	} `json:"last_payment_error"`
}

type expandable struct {
	ID string
}

func (e *expandable) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &e.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	e.ID = obj.ID
	return nil
}

func stripeEventKind(t stripe.EventType) entities.EventKind {
	switch t {
	case stripe.EventTypePaymentIntentSucceeded:
		return entities.EventKindAttemptSucceeded
	case stripe.EventTypePaymentIntentPaymentFailed:
		return entities.EventKindAttemptFailed
	case stripe.EventTypePaymentIntentRequiresAction:
		return entities.EventKindAttemptRequiresAction
	}
	return entities.EventKindIgnored
}

func parseStripeEvent(event stripe.Event) (entities.GatewayEvent, error) {
	out := entities.GatewayEvent{
		ID:          event.ID,
		Provider:    entities.ProviderStripe,
		Kind:        stripeEventKind(event.Type),
		GatewayType: string(event.Type),
		CreatedAt:   time.Unix(event.Created, 0).UTC(),
	}
	if out.Kind == entities.EventKindIgnored {
		return out, nil
	}
	if event.ID == "" || event.Data == nil || len(event.Data.Raw) == 0 {
		return entities.GatewayEvent{}, fmt.Errorf("stripe event %q has no data object", event.ID)
	}

	var pi stripeIntentObject
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return entities.GatewayEvent{}, fmt.Errorf("decode payment intent: %w", err)
	}

	out.Attempt = entities.AttemptSnapshot{
		AttemptID:        pi.ID,
		LinkToken:        strings.TrimSpace(pi.Metadata["payment_link_id"]),
		AmountMinor:      pi.Amount,
		Currency:         pi.Currency,
		PaymentMethodRef: pi.PaymentMethod.ID,
		CustomerRef:      pi.Customer.ID,
		LatestChargeRef:  pi.LatestCharge.ID,
	}
	if e := pi.LastPaymentError; e != nil {
		out.Attempt.LastError = &entities.AttemptError{Code: e.Code, Message: e.Message, Type: e.Type, DeclineCode: e.DeclineCode}
		if pm := e.PaymentMethod; pm != nil {
			out.Attempt.PaymentMethod = pm.Type
			out.Attempt.CustomerEmail = pm.BillingDetails.Email
			out.Attempt.CustomerName = pm.BillingDetails.Name
		}
	}
	return out, nil
}
