package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     int64
	}{
		{name: "usd cents", amount: "100.00", currency: "USD", want: 10000},
		{name: "lower case currency", amount: "12.34", currency: "eur", want: 1234},
		{name: "jpy has no minor unit", amount: "500", currency: "JPY", want: 500},
		{name: "rounds half up", amount: "0.005", currency: "USD", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToMinorUnits(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := FromMinorUnits(10000, "usd"); !got.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected 100.00, got %s", got)
	}
	if got := FromMinorUnits(500, "JPY"); !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected 500, got %s", got)
	}
}
