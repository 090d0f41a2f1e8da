package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dealflow/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentAttemptMemoryRepository_ConcurrentUpsert(t *testing.T) {
	repo := NewPaymentAttemptMemoryRepository()
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	var created, applied atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := entities.AttemptStatusPending
			if i%2 == 0 {
				status = entities.AttemptStatusSuccess
			}
			res, err := repo.Upsert(ctx, attemptAt(status, fmt.Sprintf("evt_%d", i), t0))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if res.Created {
				created.Add(1)
			}
			if res.Applied {
				applied.Add(1)
			}
		}(i)
	}
	wg.Wait()

	rows, err := repo.ListByLink(ctx, "link-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int32(1), created.Load())
	assert.GreaterOrEqual(t, applied.Load(), int32(1))
	assert.Equal(t, entities.AttemptStatusSuccess, rows[0].Status)
}

func TestPaymentAttemptMemoryRepository_PendingKeepsDetails(t *testing.T) {
	repo := NewPaymentAttemptMemoryRepository()
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	first := attemptAt(entities.AttemptStatusPending, "evt_0", t0)
	first.PaymentMethod = "card"
	first.CustomerEmail = "payer@example.com"
	_, err := repo.Upsert(ctx, first)
	require.NoError(t, err)

	second := attemptAt(entities.AttemptStatusPending, "evt_1", t0.Add(time.Second))
	second.PaymentMethod = entities.PaymentMethodUnknown
	res, err := repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "card", res.Attempt.PaymentMethod)
	assert.Equal(t, "payer@example.com", res.Attempt.CustomerEmail)
}
