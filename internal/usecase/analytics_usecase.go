package usecase

import (
	"context"
	"sort"
	"strings"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

type PaymentMethodSummary struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	SuccessCount  int             `json:"success_count"`
	FailedCount   int             `json:"failed_count"`
}

type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// IAnalyticsUseCase reports over an owner's attempts. Totals sum amounts as
// recorded; no currency conversion happens.
type IAnalyticsUseCase interface {
	ListPayments(ctx context.Context, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error)
	PaymentMethodSummary(ctx context.Context, ownerID string) ([]PaymentMethodSummary, error)
	CurrencyTotals(ctx context.Context, ownerID string) ([]CurrencyTotal, error)
}

type AnalyticsUseCase struct {
	attempts interfaces.IPaymentAttemptRepository
}

var _ IAnalyticsUseCase = (*AnalyticsUseCase)(nil)

func NewAnalyticsUseCase(attempts interfaces.IPaymentAttemptRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{attempts: attempts}
}

func (u *AnalyticsUseCase) ListPayments(ctx context.Context, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error) {
	if strings.TrimSpace(filter.OwnerID) == "" {
		return nil, ErrInvalidOwner
	}
	filter.Currency = entities.NormalizeCurrency(filter.Currency)
	items, err := u.attempts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (u *AnalyticsUseCase) PaymentMethodSummary(ctx context.Context, ownerID string) ([]PaymentMethodSummary, error) {
	items, err := u.ListPayments(ctx, entities.AttemptFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	byMethod := map[string]*PaymentMethodSummary{}
	for _, a := range items {
		s, ok := byMethod[a.PaymentMethod]
		if !ok {
			s = &PaymentMethodSummary{PaymentMethod: a.PaymentMethod, Total: decimal.Zero}
			byMethod[a.PaymentMethod] = s
		}
		s.Count++
		s.Total = s.Total.Add(a.Amount)
		switch a.Status {
		case entities.AttemptStatusSuccess:
			s.SuccessCount++
		case entities.AttemptStatusFailed:
			s.FailedCount++
		}
	}
	out := make([]PaymentMethodSummary, 0, len(byMethod))
	for _, s := range byMethod {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethod < out[j].PaymentMethod })
	return out, nil
}

// CurrencyTotals only counts successful attempts.
func (u *AnalyticsUseCase) CurrencyTotals(ctx context.Context, ownerID string) ([]CurrencyTotal, error) {
	items, err := u.ListPayments(ctx, entities.AttemptFilter{OwnerID: ownerID, Status: entities.AttemptStatusSuccess})
	if err != nil {
		return nil, err
	}
	byCurrency := map[string]*CurrencyTotal{}
	for _, a := range items {
		t, ok := byCurrency[a.Currency]
		if !ok {
			t = &CurrencyTotal{Currency: a.Currency, Total: decimal.Zero}
			byCurrency[a.Currency] = t
		}
		t.Count++
		t.Total = t.Total.Add(a.Amount)
	}
	out := make([]CurrencyTotal, 0, len(byCurrency))
	for _, t := range byCurrency {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}
