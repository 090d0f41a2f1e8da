package interfaces

import (
	"context"
	"fmt"

	"dealflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// AttemptRequest is what the initiation service asks a gateway to open.
type AttemptRequest struct {
	LinkToken   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// GatewayError is a failure reported by the provider itself (declined
// parameters, invalid currency...). Message is safe to show to the payer.
type GatewayError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway error code=%s: %s", e.Provider, e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// IPaymentGateway abstracts external payment providers (Stripe, Mercado Pago).
//
// CreateAttempt must not retry internally and must honor ctx deadlines.
type IPaymentGateway interface {
	Provider() string
	CreateAttempt(ctx context.Context, req AttemptRequest) (entities.AttemptHandle, error)
}

// IPaymentMethodLookup resolves the payment method type used by a successful attempt.
type IPaymentMethodLookup interface {
	LookupPaymentMethod(ctx context.Context, attempt entities.AttemptSnapshot) (string, error)
}
