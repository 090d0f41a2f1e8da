package request

import (
	"strings"
	"time"
	"unicode/utf8"

	"dealflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	queryDateLayout         = "2006-01-02"
	maxCurrencyQueryLength  = 3
	maxPaymentMethodLength  = 50
	maxAmountQueryDecimals  = 2
	maxAmountQueryIntDigits = 8
)

// PaymentAnalyticsQuery holds the GET /analytics/payments filters as strings;
// ToFilter validates and converts them.
type PaymentAnalyticsQuery struct {
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	StartAmount   string `form:"start_amount"`
	EndAmount     string `form:"end_amount"`
	Currency      string `form:"currency"`
	PaymentMethod string `form:"payment_method"`
}

// ToFilter returns field errors keyed by query parameter. Both dates are
// inclusive days; EndDate in the filter is the exclusive start of the next day.
func (q PaymentAnalyticsQuery) ToFilter(ownerID string) (entities.AttemptFilter, map[string][]string) {
	errs := map[string][]string{}
	f := entities.AttemptFilter{OwnerID: ownerID}

	start, ok := parseQueryDate(q.StartDate, "start_date", errs)
	if ok && start != nil {
		f.StartDate = start
	}
	end, ok := parseQueryDate(q.EndDate, "end_date", errs)
	if ok && end != nil {
		next := end.AddDate(0, 0, 1)
		f.EndDate = &next
	}
	if start != nil && end != nil && start.After(*end) {
		errs["non_field_errors"] = append(errs["non_field_errors"], "End date must be after start date")
	}

	f.MinAmount = parseQueryAmount(q.StartAmount, "start_amount", errs)
	f.MaxAmount = parseQueryAmount(q.EndAmount, "end_amount", errs)

	if c := strings.TrimSpace(q.Currency); c != "" {
		if utf8.RuneCountInString(c) > maxCurrencyQueryLength {
			errs["currency"] = append(errs["currency"], "Ensure this field has no more than 3 characters.")
		} else {
			f.Currency = entities.NormalizeCurrency(c)
		}
	}
	if m := strings.TrimSpace(q.PaymentMethod); m != "" {
		if utf8.RuneCountInString(m) > maxPaymentMethodLength {
			errs["payment_method"] = append(errs["payment_method"], "Ensure this field has no more than 50 characters.")
		} else {
			f.PaymentMethod = m
		}
	}

	if len(errs) > 0 {
		return entities.AttemptFilter{}, errs
	}
	return f, nil
}

func parseQueryDate(raw, field string, errs map[string][]string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		errs[field] = append(errs[field], "Date has wrong format. Use YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}

func parseQueryAmount(raw, field string, errs map[string][]string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errs[field] = append(errs[field], "A valid number is required.")
		return nil
	}
	switch {
	case -d.Exponent() > maxAmountQueryDecimals:
		errs[field] = append(errs[field], "Ensure that there are no more than 2 decimal places.")
		return nil
	case len(d.Truncate(0).Abs().String()) > maxAmountQueryIntDigits:
		errs[field] = append(errs[field], "Ensure that there are no more than 10 digits in total.")
		return nil
	}
	return &d
}
