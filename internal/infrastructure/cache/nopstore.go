package cache

import (
	"context"
	"time"
)

// NopStore is a Store that keeps nothing. Every Get misses.
type NopStore struct{}

var _ Store = NopStore{}

func (NopStore) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (NopStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NopStore) Delete(ctx context.Context, key string) error { return nil }

func (NopStore) DeleteByPattern(ctx context.Context, pattern string) (int64, error) { return 0, nil }

func (NopStore) FlushAll(ctx context.Context) error { return nil }
