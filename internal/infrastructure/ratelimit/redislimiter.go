package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "timetable:ratelimit"

// RedisLimiter is a sliding-window limiter over one sorted set per subject
// and window. Members are request timestamps in nanoseconds.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, subject string, quota Quota) (bool, error) {
	now := l.now()

	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, quota.RequestsPerMinute},
		{time.Hour, quota.RequestsPerHour},
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		allowed, err := l.checkWindow(ctx, subject, w.duration, w.limit, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

func (l *RedisLimiter) checkWindow(ctx context.Context, subject string, window time.Duration, limit int, now time.Time) (bool, error) {
	key := l.key(subject, window)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, key, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit window %s: %w", window, err)
	}
	return card.Val() < int64(limit), nil
}

// Count returns the number of requests recorded in the window ending now.
func (l *RedisLimiter) Count(ctx context.Context, subject string, window time.Duration) (int64, error) {
	key := l.key(subject, window)
	windowStart := l.now().Add(-window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return card.Val(), nil
}

// Reset drops every window recorded for subject.
func (l *RedisLimiter) Reset(ctx context.Context, subject string) error {
	iter := l.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", keyPrefix, subject), 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisLimiter) key(subject string, window time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, subject, window.String())
}
