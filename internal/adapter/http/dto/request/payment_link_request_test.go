package request

import (
	"encoding/json"
	"testing"
)

func TestCreatePaymentLinkRequest_AmountForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "number", body: `{"amount":100.5}`, want: "100.5"},
		{name: "string", body: `{"amount":" 100.00 "}`, want: "100.00"},
		{name: "null", body: `{"amount":null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
		{name: "bool kept raw", body: `{"amount":true}`, want: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreatePaymentLinkRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := req.ToInput().Amount; got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCreatePaymentLinkRequest_ToInput(t *testing.T) {
	req := CreatePaymentLinkRequest{Amount: "10", Currency: "usd", Description: "d", ExpirationDate: "2026-12-31"}
	in := req.ToInput()
	if in.Currency != "usd" || in.Description != "d" || in.ExpirationDate != "2026-12-31" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
