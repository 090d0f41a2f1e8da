package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are charged by gateways in whole units, with no minor unit.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {}, "KRW": {}, "MGA": {},
	"PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// MaxAmount mirrors a NUMERIC(10,2) column.
var MaxAmount = decimal.RequireFromString("99999999.99")

func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func IsZeroDecimalCurrency(currency string) bool {
	_, ok := zeroDecimalCurrencies[NormalizeCurrency(currency)]
	return ok
}

// CurrencyExponent is the number of fractional digits a currency allows.
func CurrencyExponent(currency string) int32 {
	if IsZeroDecimalCurrency(currency) {
		return 0
	}
	return 2
}

// ToMinorUnits converts a decimal amount into the integer unit gateways expect
// (cents for USD, yen for JPY). Extra precision is rounded half-up.
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	exp := CurrencyExponent(currency)
	return amount.Shift(exp).Round(0).IntPart()
}

func FromMinorUnits(minor int64, currency string) decimal.Decimal {
	exp := CurrencyExponent(currency)
	return decimal.New(minor, -exp)
}
