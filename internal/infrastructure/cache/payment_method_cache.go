package cache

import (
	"context"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"
)

const paymentMethodKeyPrefix = "dealflow:payment_method:"

// PaymentMethodCache memoizes gateway payment method lookups. A charge never
// changes its method, so entries only expire to bound memory.
type PaymentMethodCache struct {
	next  interfaces.IPaymentMethodLookup
	cache *RedisCache
	ttl   time.Duration
}

var _ interfaces.IPaymentMethodLookup = (*PaymentMethodCache)(nil)

func NewPaymentMethodCache(next interfaces.IPaymentMethodLookup, cache *RedisCache, ttl time.Duration) *PaymentMethodCache {
	return &PaymentMethodCache{next: next, cache: cache, ttl: ttl}
}

func (c *PaymentMethodCache) LookupPaymentMethod(ctx context.Context, attempt entities.AttemptSnapshot) (string, error) {
	if attempt.PaymentMethod != "" {
		return attempt.PaymentMethod, nil
	}
	if attempt.AttemptID == "" && attempt.LatestChargeRef == "" {
		return c.next.LookupPaymentMethod(ctx, attempt)
	}

	key := paymentMethodKeyPrefix + attempt.AttemptID + ":" + attempt.LatestChargeRef
	return GetOrSet(c.cache, ctx, key, c.ttl, func() (string, error) {
		return c.next.LookupPaymentMethod(ctx, attempt)
	})
}
