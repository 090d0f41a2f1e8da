package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealflow/internal/domain/entities"
	mock_interfaces "dealflow/internal/usecase/interfaces/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url")
	require.Error(t, err)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])

	require.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Get(ctx, "k", &got))
}

func TestPaymentMethodCache_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockIPaymentMethodLookup(ctrl)
	c, mr := newTestCache(t)
	lookup := NewPaymentMethodCache(next, c, time.Hour)
	ctx := context.Background()
	snap := entities.AttemptSnapshot{AttemptID: "pi_1", LatestChargeRef: "ch_1"}

	next.EXPECT().LookupPaymentMethod(gomock.Any(), snap).Return("card", nil).Times(1)

	for i := 0; i < 3; i++ {
		method, err := lookup.LookupPaymentMethod(ctx, snap)
		require.NoError(t, err)
		assert.Equal(t, "card", method)
	}
	assert.True(t, mr.Exists(paymentMethodKeyPrefix+"pi_1:ch_1"))

	mr.FastForward(2 * time.Hour)
	next.EXPECT().LookupPaymentMethod(gomock.Any(), snap).Return("card", nil).Times(1)
	_, err := lookup.LookupPaymentMethod(ctx, snap)
	require.NoError(t, err)
}

func TestPaymentMethodCache_ErrorsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockIPaymentMethodLookup(ctrl)
	c, _ := newTestCache(t)
	lookup := NewPaymentMethodCache(next, c, time.Hour)
	snap := entities.AttemptSnapshot{AttemptID: "pi_2", LatestChargeRef: "ch_2"}

	gomock.InOrder(
		next.EXPECT().LookupPaymentMethod(gomock.Any(), snap).Return("", errors.New("timeout")),
		next.EXPECT().LookupPaymentMethod(gomock.Any(), snap).Return("sepa_debit", nil),
	)

	_, err := lookup.LookupPaymentMethod(context.Background(), snap)
	require.Error(t, err)

	method, err := lookup.LookupPaymentMethod(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, "sepa_debit", method)
}

func TestPaymentMethodCache_KnownMethodSkipsLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mock_interfaces.NewMockIPaymentMethodLookup(ctrl)
	c, _ := newTestCache(t)

	method, err := NewPaymentMethodCache(next, c, time.Hour).LookupPaymentMethod(context.Background(), entities.AttemptSnapshot{AttemptID: "1", PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, "pix", method)
}
