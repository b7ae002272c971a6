package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is a per-key, TTL-bounded mapping from string key to a serialized
// JSON payload. Every list-returning operation reads through it; every
// mutation overwrites its entry (write-through, last write wins). Entries
// are never explicitly deleted.
type Store interface {
	// Get returns the payload at key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the payload at key with the given TTL.
	Set(ctx context.Context, key string, payload string, ttl time.Duration) error
}

// Cache key builders, one namespace per resource

func CartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func AddressKey(userID uint) string {
	return fmt.Sprintf("address:%d", userID)
}

func ProductKey(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}

// GetJSON reads and decodes a typed snapshot. A decode failure is treated
// as a miss so a stale or truncated entry can never poison reads.
func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool) {
	var zero T

	payload, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return zero, false
	}
	return value, true
}

// SetJSON encodes and stores a typed snapshot
func SetJSON[T any](ctx context.Context, store Store, key string, value T, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(payload), ttl)
}
