package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttemptStatus string

const (
	AttemptStatusPending AttemptStatus = "pending"
	AttemptStatusSuccess AttemptStatus = "success"
	AttemptStatusFailed  AttemptStatus = "failed"
)

const PaymentMethodUnknown = "unknown"

// Rank orders statuses for the monotonic write guard: a write only lands when
// its rank is greater than or equal to the stored one.
func (s AttemptStatus) Rank() int {
	switch s {
	case AttemptStatusPending:
		return 1
	case AttemptStatusFailed:
		return 2
	case AttemptStatusSuccess:
		return 3
	}
	return 0
}

func (s AttemptStatus) Terminal() bool {
	return s == AttemptStatusSuccess || s == AttemptStatusFailed
}

// PaymentAttempt is one gateway attempt to pay a link. GatewayAttemptID is the
// idempotency key; at most one row exists per (LinkID, GatewayAttemptID).
//
// Storage model (DynamoDB):
//   - PK: gateway_attempt_id
//   - GSI (payment_link_id-index): payment_link_id
//   - GSI (owner_id-index): owner_id
type PaymentAttempt struct {
	GatewayAttemptID string          `json:"gateway_attempt_id"`
	LinkID           string          `json:"payment_link_id"`
	OwnerID          string          `json:"owner_id"`
	Provider         string          `json:"provider"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           AttemptStatus   `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	CustomerName     string          `json:"customer_name,omitempty"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
	LastEventID      string          `json:"last_event_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AttemptFilter narrows analytics listings. Zero values mean "no filter".
type AttemptFilter struct {
	OwnerID       string
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Currency      string
	PaymentMethod string
	Status        AttemptStatus
}

// Matches applies the filter in memory; drivers that cannot push a predicate
// down to storage use it after loading the owner's rows.
func (f AttemptFilter) Matches(a PaymentAttempt) bool {
	if f.OwnerID != "" && a.OwnerID != f.OwnerID {
		return false
	}
	if f.StartDate != nil && a.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !a.CreatedAt.Before(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && a.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && a.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.Currency != "" && a.Currency != NormalizeCurrency(f.Currency) {
		return false
	}
	if f.PaymentMethod != "" && a.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
