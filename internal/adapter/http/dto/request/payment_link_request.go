package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"dealflow/internal/usecase"
)

// FlexibleAmount accepts either a JSON number or a JSON string ("100.00").
// Anything else is kept as raw text so validation reports it as invalid.
type FlexibleAmount string

func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = FlexibleAmount(s)
	default:
		*a = FlexibleAmount(data)
	}
	return nil
}

// CreatePaymentLinkRequest is the payload for POST /payment-links.
type CreatePaymentLinkRequest struct {
	Amount         FlexibleAmount `json:"amount" swaggertype:"string" example:"100.00"`
	Currency       string         `json:"currency" example:"USD"`
	Description    string         `json:"description" example:"Consulting, March"`
	ExpirationDate string         `json:"expiration_date,omitempty" example:"2026-12-31"`
}

func (r CreatePaymentLinkRequest) ToInput() usecase.CreatePaymentLinkInput {
	return usecase.CreatePaymentLinkInput{
		Amount:         strings.TrimSpace(string(r.Amount)),
		Currency:       r.Currency,
		Description:    r.Description,
		ExpirationDate: r.ExpirationDate,
	}
}
