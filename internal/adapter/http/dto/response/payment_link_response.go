package response

import (
	"time"

	"dealflow/internal/domain/entities"
)

const PaymentLinkPath = "/v1/payment-links/"

// PaymentLinkCreatedResponse is returned by POST /payment-links.
type PaymentLinkCreatedResponse struct {
	Status     string `json:"status" example:"success"`
	PaymentURL string `json:"payment_url"`
	PaymentID  string `json:"payment_id"`
}

type PaymentLinkResponse struct {
	PaymentID      string    `json:"payment_id"`
	PaymentURL     string    `json:"payment_url"`
	Amount         string    `json:"amount" example:"100.00"`
	Currency       string    `json:"currency"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	ExpirationDate *string   `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func PaymentURL(publicBaseURL, token string) string {
	return publicBaseURL + PaymentLinkPath + token
}

func FromPaymentLinkCreated(l entities.PaymentLink, publicBaseURL string) PaymentLinkCreatedResponse {
	return PaymentLinkCreatedResponse{
		Status:     "success",
		PaymentURL: PaymentURL(publicBaseURL, l.UniqueID),
		PaymentID:  l.UniqueID,
	}
}

func FromPaymentLink(l entities.PaymentLink, publicBaseURL string) PaymentLinkResponse {
	r := PaymentLinkResponse{
		PaymentID:   l.UniqueID,
		PaymentURL:  PaymentURL(publicBaseURL, l.UniqueID),
		Amount:      l.Amount.StringFixed(entities.CurrencyExponent(l.Currency)),
		Currency:    l.Currency,
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.ExpirationDate != nil {
		d := l.ExpirationDate.UTC().Format("2006-01-02")
		r.ExpirationDate = &d
	}
	return r
}

func FromPaymentLinks(links []entities.PaymentLink, publicBaseURL string) []PaymentLinkResponse {
	out := make([]PaymentLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, FromPaymentLink(l, publicBaseURL))
	}
	return out
}

// PaymentIntentResponse carries what the checkout page needs. RedirectURL is
// set by gateways with a hosted checkout.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirect_url,omitempty"`
}

func FromAttemptHandle(h entities.AttemptHandle) PaymentIntentResponse {
	return PaymentIntentResponse{ClientSecret: h.ClientSecret, RedirectURL: h.RedirectURL}
}
