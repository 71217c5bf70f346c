package adapter

import (
	"context"
	"errors"
	"time"

	"trivia-api/internal/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	storageService    = "limiter"
	storageObjectType = "counter"
	storageTimeout    = 2 * time.Second
	resetScanCount    = 100
)

// RedisStorage implements fiber.Storage on Redis so that rate-limit counters are shared
// between replicas. Keys are namespaced with cache.GenerateCacheKey.
type RedisStorage struct {
	client redis.UniversalClient
}

// NewRedisStorage wraps a connected client. The client stays owned by the caller.
func NewRedisStorage(client redis.UniversalClient) fiber.Storage {
	return &RedisStorage{client: client}
}

func storageKey(key string) string {
	return cache.GenerateCacheKey(storageService, storageObjectType, key)
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// Set stores val; exp of 0 keeps the key until it is deleted.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Set(ctx, storageKey(key), val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Del(ctx, storageKey(key)).Err()
}

// Reset removes every limiter key, leaving the rest of the Redis keyspace alone.
func (s *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	match := storageKey("*")
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, resetScanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close is a no-op; the Redis client is closed by whoever created it.
func (s *RedisStorage) Close() error {
	return nil
}
