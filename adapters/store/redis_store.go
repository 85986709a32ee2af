package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layer-3/clickcha/core"
	"github.com/layer-3/clickcha/ports"
)

// RedisStore is a Redis implementation of the Store interface. Redis owns
// physical expiry: keys are set with a TTL and vanish on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) ports.Store {
	return &RedisStore{
		client: client,
		prefix: "clickcha:captcha:",
	}
}

// Set stores a serialized challenge with an expiration time
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}

// Get retrieves a serialized challenge by key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", core.ErrChallengeNotFound
		}
		return "", fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return value, nil
}

// Delete removes a key and reports whether it existed. DEL is atomic, so
// concurrent deletes of the same key see was-present exactly once.
func (s *RedisStore) Delete(ctx context.Context, key string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return deleted > 0, nil
}
