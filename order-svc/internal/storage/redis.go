package storage

import (
	"context"
	"errors"
	"time"

	"overcooked-ordering/order-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// IdempotencyCache keeps checkout results keyed by the client's
// Idempotency-Key. A key holds pendingMarker while its request runs.
type IdempotencyCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewIdempotencyCache(client *redis.Client, ttl time.Duration) *IdempotencyCache {
	return &IdempotencyCache{Client: client, TTL: ttl}
}

func (c *IdempotencyCache) Reserve(ctx context.Context, key string) ([]byte, error) {
	ok, err := c.Client.SetNX(ctx, key, pendingMarker, c.TTL).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}

	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrRequestInFlight
	}
	if err != nil {
		return nil, err
	}
	if string(val) == pendingMarker {
		return nil, service.ErrRequestInFlight
	}
	return val, nil
}

func (c *IdempotencyCache) Complete(ctx context.Context, key string, response []byte) error {
	return c.Client.Set(ctx, key, response, c.TTL).Err()
}

func (c *IdempotencyCache) Release(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

var _ service.IdempotencyStore = (*IdempotencyCache)(nil)
