package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	mock_interfaces "dealflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func attemptFixture(id, method, currency, amount string, status entities.AttemptStatus, createdAt time.Time) entities.PaymentAttempt {
	return entities.PaymentAttempt{
		GatewayAttemptID: id,
		OwnerID:          "owner-1",
		PaymentMethod:    method,
		Currency:         currency,
		Amount:           decimal.RequireFromString(amount),
		Status:           status,
		CreatedAt:        createdAt,
	}
}

func TestAnalyticsUseCase_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentAttemptRepository(ctrl)
	uc := NewAnalyticsUseCase(repo)

	older := attemptFixture("pi_1", "card", "USD", "10", entities.AttemptStatusSuccess, fixedNow.Add(-time.Hour))
	newer := attemptFixture("pi_2", "card", "USD", "20", entities.AttemptStatusSuccess, fixedNow)

	repo.EXPECT().List(gomock.Any(), entities.AttemptFilter{OwnerID: "owner-1", Currency: "USD"}).Return([]entities.PaymentAttempt{older, newer}, nil)

	items, err := uc.ListPayments(context.Background(), entities.AttemptFilter{OwnerID: "owner-1", Currency: "usd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].GatewayAttemptID != "pi_2" {
		t.Fatalf("expected newest first, got %+v", items)
	}

	if _, err := uc.ListPayments(context.Background(), entities.AttemptFilter{}); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("expected ErrInvalidOwner, got %v", err)
	}
}

func TestAnalyticsUseCase_PaymentMethodSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentAttemptRepository(ctrl)
	uc := NewAnalyticsUseCase(repo)

	repo.EXPECT().List(gomock.Any(), entities.AttemptFilter{OwnerID: "owner-1"}).Return([]entities.PaymentAttempt{
		attemptFixture("pi_1", "card", "USD", "10.50", entities.AttemptStatusSuccess, fixedNow),
		attemptFixture("pi_2", "card", "USD", "5", entities.AttemptStatusFailed, fixedNow),
		attemptFixture("pi_3", "unknown", "USD", "1", entities.AttemptStatusPending, fixedNow),
	}, nil)

	got, err := uc.PaymentMethodSummary(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].PaymentMethod != "card" {
		t.Fatalf("unexpected summary %+v", got)
	}
	card := got[0]
	if card.Count != 2 || card.SuccessCount != 1 || card.FailedCount != 1 || !card.Total.Equal(decimal.RequireFromString("15.50")) {
		t.Fatalf("unexpected card summary %+v", card)
	}
}

func TestAnalyticsUseCase_CurrencyTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentAttemptRepository(ctrl)
	uc := NewAnalyticsUseCase(repo)

	repo.EXPECT().List(gomock.Any(), entities.AttemptFilter{OwnerID: "owner-1", Status: entities.AttemptStatusSuccess}).Return([]entities.PaymentAttempt{
		attemptFixture("pi_1", "card", "USD", "10", entities.AttemptStatusSuccess, fixedNow),
		attemptFixture("pi_2", "card", "USD", "2.25", entities.AttemptStatusSuccess, fixedNow),
		attemptFixture("pi_3", "card", "JPY", "500", entities.AttemptStatusSuccess, fixedNow),
	}, nil)

	got, err := uc.CurrencyTotals(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Currency != "JPY" || got[1].Currency != "USD" {
		t.Fatalf("unexpected totals %+v", got)
	}
	if got[1].Count != 2 || !got[1].Total.Equal(decimal.RequireFromString("12.25")) {
		t.Fatalf("unexpected USD total %+v", got[1])
	}
}
