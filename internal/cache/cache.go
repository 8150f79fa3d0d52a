package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache stores serialized payloads under string keys with a per-entry TTL.
// Implementations must treat a zero or negative TTL as "do not store".
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Forget(ctx context.Context, keys ...string) error
}
