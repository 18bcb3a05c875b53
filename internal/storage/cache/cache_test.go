package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

func exerciseCache(t *testing.T, c storage.UsageCache, userID string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := c.GetCount(ctx, userID, domain.CalculatorBuyVsRent)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetCount(ctx, userID, domain.CalculatorBuyVsRent, 2))
	n, ok, err := c.GetCount(ctx, userID, domain.CalculatorBuyVsRent)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok, err = c.GetCount(ctx, userID, domain.CalculatorCompoundInterest)
	require.NoError(t, err)
	assert.False(t, ok, "counts are per calculator")

	require.NoError(t, c.Invalidate(ctx, userID, domain.CalculatorBuyVsRent))
	_, ok, err = c.GetCount(ctx, userID, domain.CalculatorBuyVsRent)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache(time.Minute), "u1")
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetCount(ctx, "u1", domain.CalculatorBuyVsRent, 1))
	now = now.Add(59 * time.Second)
	_, ok, _ := c.GetCount(ctx, "u1", domain.CalculatorBuyVsRent)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.GetCount(ctx, "u1", domain.CalculatorBuyVsRent)
	assert.False(t, ok)
}

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}
	c := NewRedisCache(addr, os.Getenv("TEST_REDIS_PASSWORD"), time.Minute)
	defer c.Close()
	require.NoError(t, c.Ping(context.Background()))

	exerciseCache(t, c, "it-"+time.Now().Format("150405.000000"))
}
