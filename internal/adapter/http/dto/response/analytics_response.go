package response

import (
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase"
)

type PaymentAttemptResponse struct {
	ID            string         `json:"id"`
	PaymentLinkID string         `json:"payment_link_id"`
	Provider      string         `json:"provider"`
	Amount        string         `json:"amount" example:"100.00"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	CustomerName  string         `json:"customer_name,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type PaymentMethodSummaryResponse struct {
	PaymentMethod string `json:"payment_method"`
	Count         int    `json:"count"`
	TotalAmount   string `json:"total_amount"`
	SuccessCount  int    `json:"success_count"`
	FailedCount   int    `json:"failed_count"`
}

type CurrencyTotalResponse struct {
	Currency    string `json:"currency"`
	Count       int    `json:"count"`
	TotalAmount string `json:"total_amount"`
}

func FromPaymentAttempt(a entities.PaymentAttempt) PaymentAttemptResponse {
	return PaymentAttemptResponse{
		ID:            a.GatewayAttemptID,
		PaymentLinkID: a.LinkID,
		Provider:      a.Provider,
		Amount:        a.Amount.StringFixed(entities.CurrencyExponent(a.Currency)),
		Currency:      a.Currency,
		Status:        string(a.Status),
		PaymentMethod: a.PaymentMethod,
		CustomerEmail: a.CustomerEmail,
		CustomerName:  a.CustomerName,
		Metadata:      a.Metadata,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func FromPaymentAttempts(items []entities.PaymentAttempt) []PaymentAttemptResponse {
	out := make([]PaymentAttemptResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromPaymentAttempt(a))
	}
	return out
}

// Totals mix currencies, so they are rendered with two decimals.
func FromPaymentMethodSummaries(items []usecase.PaymentMethodSummary) []PaymentMethodSummaryResponse {
	out := make([]PaymentMethodSummaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, PaymentMethodSummaryResponse{
			PaymentMethod: s.PaymentMethod,
			Count:         s.Count,
			TotalAmount:   s.Total.StringFixed(2),
			SuccessCount:  s.SuccessCount,
			FailedCount:   s.FailedCount,
		})
	}
	return out
}

func FromCurrencyTotals(items []usecase.CurrencyTotal) []CurrencyTotalResponse {
	out := make([]CurrencyTotalResponse, 0, len(items))
	for _, t := range items {
		out = append(out, CurrencyTotalResponse{
			Currency:    t.Currency,
			Count:       t.Count,
			TotalAmount: t.Total.StringFixed(entities.CurrencyExponent(t.Currency)),
		})
	}
	return out
}
