package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func attemptAt(status entities.AttemptStatus, eventID string, at time.Time) entities.PaymentAttempt {
	a := sampleAttempt(status, eventID)
	a.CreatedAt = at
	a.UpdatedAt = at
	return a
}

func TestPaymentAttemptGormRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending then success converges to one success row", func(t *testing.T) {
		repo := NewPaymentAttemptGormRepository(newTestDB(t))

		pending := attemptAt(entities.AttemptStatusPending, "evt_0", t0)
		pending.PaymentMethod = entities.PaymentMethodUnknown
		res, err := repo.Upsert(ctx, pending)
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.True(t, res.Created)

		success := attemptAt(entities.AttemptStatusSuccess, "evt_1", t0.Add(time.Minute))
		success.Metadata = map[string]any{"payment_method_details": "card"}
		res, err = repo.Upsert(ctx, success)
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.False(t, res.Created)
		assert.Equal(t, entities.AttemptStatusSuccess, res.Attempt.Status)
		assert.Equal(t, "card", res.Attempt.PaymentMethod)
		assert.True(t, res.Attempt.CreatedAt.Equal(t0))

		rows, err := repo.ListByLink(ctx, "link-1")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("late pending after success is stale", func(t *testing.T) {
		repo := NewPaymentAttemptGormRepository(newTestDB(t))

		_, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusSuccess, "evt_1", t0))
		require.NoError(t, err)

		res, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusPending, "evt_0", t0.Add(time.Minute)))
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, entities.AttemptStatusSuccess, res.Attempt.Status)
	})

	t.Run("same event twice is not reapplied", func(t *testing.T) {
		repo := NewPaymentAttemptGormRepository(newTestDB(t))

		_, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusSuccess, "evt_1", t0))
		require.NoError(t, err)
		res, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusSuccess, "evt_1", t0.Add(time.Minute)))
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.True(t, res.Attempt.UpdatedAt.Equal(t0))
	})

	t.Run("failed then success is allowed", func(t *testing.T) {
		repo := NewPaymentAttemptGormRepository(newTestDB(t))

		_, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusFailed, "evt_f", t0))
		require.NoError(t, err)
		res, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusSuccess, "evt_s", t0.Add(time.Minute)))
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, entities.AttemptStatusSuccess, res.Attempt.Status)
	})

	t.Run("attempt id reused for another link", func(t *testing.T) {
		repo := NewPaymentAttemptGormRepository(newTestDB(t))

		_, err := repo.Upsert(ctx, attemptAt(entities.AttemptStatusPending, "evt_0", t0))
		require.NoError(t, err)
		other := attemptAt(entities.AttemptStatusSuccess, "evt_1", t0)
		other.LinkID = "link-2"
		_, err = repo.Upsert(ctx, other)
		assert.True(t, errors.Is(err, interfaces.ErrAttemptLinkConflict))
	})
}

func TestPaymentAttemptGormRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentAttemptGormRepository(newTestDB(t))
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, amt := range []string{"10.00", "50.00", "90.00"} {
		a := attemptAt(entities.AttemptStatusSuccess, fmt.Sprintf("evt_%d", i), t0.Add(time.Duration(i)*time.Hour))
		a.GatewayAttemptID = fmt.Sprintf("pi_%d", i)
		a.Amount = decimal.RequireFromString(amt)
		_, err := repo.Upsert(ctx, a)
		require.NoError(t, err)
	}

	minAmount := decimal.RequireFromString("20")
	items, err := repo.List(ctx, entities.AttemptFilter{OwnerID: "owner-1", MinAmount: &minAmount, Currency: "usd"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "pi_2", items[0].GatewayAttemptID)
}

func TestPaymentLinkGormRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentLinkGormRepository(newTestDB(t))
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	link := entities.PaymentLink{
		UniqueID:    "tok-1",
		OwnerID:     "owner-1",
		Amount:      decimal.RequireFromString("100.00"),
		Currency:    "USD",
		Description: "invoice",
		Status:      entities.PaymentLinkStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := repo.Create(ctx, link)
	require.NoError(t, err)

	_, err = repo.Create(ctx, link)
	assert.ErrorIs(t, err, interfaces.ErrPaymentLinkAlreadyExists)

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))

	_, applied, err := repo.TransitionStatus(ctx, "tok-1", entities.PaymentLinkStatusActive, entities.PaymentLinkStatusCompleted)
	require.NoError(t, err)
	assert.True(t, applied)

	_, applied, err = repo.TransitionStatus(ctx, "tok-1", entities.PaymentLinkStatusActive, entities.PaymentLinkStatusExpired)
	require.NoError(t, err)
	assert.False(t, applied)

	missing, err := repo.GetByToken(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.UniqueID)
}
