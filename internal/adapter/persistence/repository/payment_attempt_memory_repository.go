package repository

import (
	"context"
	"maps"
	"sync"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"
)

// PaymentAttemptMemoryRepository applies the same conditional upsert rules as
// the DynamoDB and SQL ledgers, under a single mutex.
type PaymentAttemptMemoryRepository struct {
	mu       sync.Mutex
	attempts map[string]entities.PaymentAttempt
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptMemoryRepository)(nil)

func NewPaymentAttemptMemoryRepository() *PaymentAttemptMemoryRepository {
	return &PaymentAttemptMemoryRepository{attempts: map[string]entities.PaymentAttempt{}}
}

func (r *PaymentAttemptMemoryRepository) Upsert(_ context.Context, a entities.PaymentAttempt) (interfaces.AttemptUpsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	a.Metadata = maps.Clone(nonNilMetadata(a.Metadata))

	stored, exists := r.attempts[a.GatewayAttemptID]
	if !exists {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = a.UpdatedAt
		}
		r.attempts[a.GatewayAttemptID] = a
		return interfaces.AttemptUpsertResult{Attempt: cloneAttempt(a), Applied: true, Created: true}, nil
	}

	if stored.LinkID != a.LinkID {
		return interfaces.AttemptUpsertResult{}, interfaces.ErrAttemptLinkConflict
	}
	if stored.Status.Rank() > a.Status.Rank() || stored.LastEventID == a.LastEventID {
		return interfaces.AttemptUpsertResult{Attempt: cloneAttempt(stored), Applied: false}, nil
	}

	a.CreatedAt = stored.CreatedAt
	if !a.Status.Terminal() {
		a.PaymentMethod = stored.PaymentMethod
		a.CustomerEmail = stored.CustomerEmail
		a.CustomerName = stored.CustomerName
		a.Metadata = stored.Metadata
	}
	r.attempts[a.GatewayAttemptID] = a
	return interfaces.AttemptUpsertResult{Attempt: cloneAttempt(a), Applied: true}, nil
}

func (r *PaymentAttemptMemoryRepository) GetByAttemptID(_ context.Context, attemptID string) (entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[attemptID]
	if !ok {
		return entities.PaymentAttempt{}, nil
	}
	return cloneAttempt(a), nil
}

func (r *PaymentAttemptMemoryRepository) ListByLink(_ context.Context, linkID string) ([]entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.PaymentAttempt{}
	for _, a := range r.attempts {
		if a.LinkID == linkID {
			out = append(out, cloneAttempt(a))
		}
	}
	return out, nil
}

func (r *PaymentAttemptMemoryRepository) List(_ context.Context, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.PaymentAttempt{}
	for _, a := range r.attempts {
		if filter.Matches(a) {
			out = append(out, cloneAttempt(a))
		}
	}
	return out, nil
}

func cloneAttempt(a entities.PaymentAttempt) entities.PaymentAttempt {
	a.Metadata = maps.Clone(a.Metadata)
	return a
}
