// Package ratelimit implements request quotas shared by every API instance.
package ratelimit

import (
	"context"
	"time"
)

// Quota bounds the number of requests a subject may issue. Zero disables
// the corresponding window.
type Quota struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Limiter decides whether a subject may issue one more request.
type Limiter interface {
	Allow(ctx context.Context, subject string, quota Quota) (bool, error)
	Count(ctx context.Context, subject string, window time.Duration) (int64, error)
	Reset(ctx context.Context, subject string) error
}
