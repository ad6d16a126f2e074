package usecases

import (
	"context"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
)

// ScheduleCacheInvalidator drops cached days of a member after a write commits.
type ScheduleCacheInvalidator interface {
	MemberDates(ctx context.Context, ref cache.MemberRef, days ...time.Time)
}
