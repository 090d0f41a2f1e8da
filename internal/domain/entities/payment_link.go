package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentLinkStatus string

const (
	PaymentLinkStatusActive    PaymentLinkStatus = "active"
	PaymentLinkStatusCompleted PaymentLinkStatus = "completed"
	PaymentLinkStatusExpired   PaymentLinkStatus = "expired"
)

const PaymentLinkTokenLength = 20

// PaymentLink is a shareable request for a fixed amount.
//
// Storage model (DynamoDB):
//   - PK: unique_id
//   - GSI (owner_id-index): owner_id
//
// UniqueID is the public token; it is generated once and never reused.
// Status moves active -> completed or active -> expired and never back.
type PaymentLink struct {
	UniqueID       string            `json:"unique_id"`
	OwnerID        string            `json:"owner_id"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Description    string            `json:"description"`
	Status         PaymentLinkStatus `json:"status"`
	ExpirationDate *time.Time        `json:"expiration_date,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewPaymentLinkToken returns a 20 character lowercase hex token.
func NewPaymentLinkToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:PaymentLinkTokenLength]
}

// Expired reports whether the expiration date lies strictly before now's UTC day.
func (l PaymentLink) Expired(now time.Time) bool {
	if l.ExpirationDate == nil {
		return false
	}
	return l.ExpirationDate.UTC().Before(StartOfDay(now))
}

// Payable is evaluated in memory only; callers persist expiry separately.
func (l PaymentLink) Payable(now time.Time) bool {
	return l.Status == PaymentLinkStatusActive && !l.Expired(now)
}

func (s PaymentLinkStatus) Terminal() bool {
	return s == PaymentLinkStatusCompleted || s == PaymentLinkStatusExpired
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
