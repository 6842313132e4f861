// Package redis keeps idempotency keys for order creation.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "salesorder:idempotency:"
	DefaultTTL    = 24 * time.Hour

	pendingMarker = "pending"
)

// IdempotencyStore holds one string per key: pendingMarker while the first
// request runs, then its outcome. Keys expire after ttl.
type IdempotencyStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewIdempotencyStore creates a store on client. An empty prefix or a
// non-positive ttl fall back to DefaultPrefix and DefaultTTL.
func NewIdempotencyStore(client redis.Cmdable, prefix string, ttl time.Duration) *IdempotencyStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, prefix: prefix, ttl: ttl}
}

// Reserve claims key with the pending marker.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, string, error) {
	for range 2 {
		ok, err := s.client.SetNX(ctx, s.prefix+key, pendingMarker, s.ttl).Result()
		if err != nil {
			return false, "", err
		}
		if ok {
			return true, "", nil
		}

		stored, err := s.client.Get(ctx, s.prefix+key).Result()
		if errors.Is(err, redis.Nil) {
			// Expired between the two calls.
			continue
		}
		if err != nil {
			return false, "", err
		}
		if stored == pendingMarker {
			return false, "", nil
		}
		return false, stored, nil
	}
	return false, "", nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
