package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

const scanBatchSize = 100

// Store is the key/value port used by the schedule and plan caches.
type Store interface {
	// Get returns the stored bytes and whether the key existed.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching a glob pattern and returns how many went away.
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)
	FlushAll(ctx context.Context) error
}

// RedisStore implements Store on a Redis database.
type RedisStore struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client *redis.Client, logger logger.Interface) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

// Get retrieves a value; a missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value with a TTL. A zero TTL keeps the key until deleted.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a single key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern collects every key matching pattern with SCAN, then
// deletes them in batches. Keys are not removed while the cursor is open so
// the scan never skips entries.
func (s *RedisStore) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var matched []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		matched = append(matched, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan keys matching %s: %w", pattern, err)
	}

	var deleted int64
	for start := 0; start < len(matched); start += scanBatchSize {
		end := min(start+scanBatchSize, len(matched))
		n, err := s.client.Del(ctx, matched[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete keys matching %s: %w", pattern, err)
		}
		deleted += n
	}

	s.logger.Debugw("cache keys deleted by pattern", "pattern", pattern, "count", deleted)
	return deleted, nil
}

// FlushAll empties the selected Redis database.
func (s *RedisStore) FlushAll(ctx context.Context) error {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	s.logger.Warnw("cache flushed")
	return nil
}

// GetJSON decodes a cached JSON value into T.
func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var value T
	data, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return value, true, nil
}

// SetJSON encodes value as JSON and stores it with ttl.
func SetJSON(ctx context.Context, store Store, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return store.Set(ctx, key, data, ttl)
}
