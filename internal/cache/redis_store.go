package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
)

// RedisStore backs the cache with a shared Redis instance
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to read cache entry", err, map[string]interface{}{
			"key": key,
		})
		return "", false, err
	}
	return payload, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, payload string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to write cache entry", err, map[string]interface{}{
			"key": key,
			"ttl": ttl.String(),
		})
		return err
	}
	return nil
}
