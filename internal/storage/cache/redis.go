// Package cache holds UsageCache implementations.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

// RedisCache stores usage counts in Redis with a TTL so a missed invalidation heals itself.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.UsageCache = (*RedisCache)(nil)

// NewRedisCache connects to addr. A zero ttl keeps entries until invalidated.
func NewRedisCache(addr, password string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

// Ping checks the connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) GetCount(ctx context.Context, userID string, calcType domain.CalculatorType) (int, bool, error) {
	val, err := r.client.Get(ctx, storage.UsageKey(userID, calcType)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get: %w", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (r *RedisCache) SetCount(ctx context.Context, userID string, calcType domain.CalculatorType, count int) error {
	return r.client.Set(ctx, storage.UsageKey(userID, calcType), strconv.Itoa(count), r.ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context, userID string, calcType domain.CalculatorType) error {
	return r.client.Del(ctx, storage.UsageKey(userID, calcType)).Err()
}
