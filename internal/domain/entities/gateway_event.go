package entities

import (
	"net/http"
	"net/url"
	"time"
)

const (
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
	ProviderMock        = "mock"
)

// InboundNotification is the raw request a gateway delivered, untouched.
type InboundNotification struct {
	Provider string
	Body     []byte
	Headers  http.Header
	Query    url.Values
}

type EventKind string

const (
	EventKindAttemptRequiresAction EventKind = "attempt_requires_action"
	EventKindAttemptSucceeded      EventKind = "attempt_succeeded"
	EventKindAttemptFailed         EventKind = "attempt_failed"
	EventKindIgnored               EventKind = "ignored"
)

// GatewayEvent is a verified notification, already parsed into the fields the
// reconciler consumes. Attempt is empty when Kind is EventKindIgnored.
type GatewayEvent struct {
	ID          string
	Provider    string
	Kind        EventKind
	GatewayType string
	CreatedAt   time.Time
	Attempt     AttemptSnapshot
}

// AttemptSnapshot is the gateway's view of an attempt at event time.
type AttemptSnapshot struct {
	AttemptID        string
	LinkToken        string
	AmountMinor      int64
	Currency         string
	PaymentMethodRef string
	PaymentMethod    string
	CustomerRef      string
	CustomerEmail    string
	CustomerName     string
	LatestChargeRef  string
	LastError        *AttemptError
}

type AttemptError struct {
	Code        string
	Message     string
	Type        string
	DeclineCode string
}

// AttemptHandle is what a payer needs to complete an attempt client side.
type AttemptHandle struct {
	AttemptID    string `json:"attempt_id"`
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}
