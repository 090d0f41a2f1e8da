package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"
)

// PaymentLinkMemoryRepository keeps links in process memory. It is meant for
// local runs and tests; the mutex stands in for per-row storage atomicity.
type PaymentLinkMemoryRepository struct {
	mu    sync.Mutex
	links map[string]entities.PaymentLink
}

var _ interfaces.IPaymentLinkRepository = (*PaymentLinkMemoryRepository)(nil)

func NewPaymentLinkMemoryRepository() *PaymentLinkMemoryRepository {
	return &PaymentLinkMemoryRepository{links: map[string]entities.PaymentLink{}}
}

func (r *PaymentLinkMemoryRepository) Create(_ context.Context, link entities.PaymentLink) (entities.PaymentLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[link.UniqueID]; ok {
		return entities.PaymentLink{}, interfaces.ErrPaymentLinkAlreadyExists
	}
	r.links[link.UniqueID] = link
	return link, nil
}

func (r *PaymentLinkMemoryRepository) GetByToken(_ context.Context, token string) (entities.PaymentLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.links[token], nil
}

func (r *PaymentLinkMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]entities.PaymentLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.PaymentLink{}
	for _, l := range r.links {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PaymentLinkMemoryRepository) TransitionStatus(_ context.Context, token string, from, to entities.PaymentLinkStatus) (entities.PaymentLink, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.links[token]
	if !ok || l.Status != from {
		return entities.PaymentLink{}, false, nil
	}
	l.Status = to
	l.UpdatedAt = time.Now().UTC()
	r.links[token] = l
	return l, true, nil
}
