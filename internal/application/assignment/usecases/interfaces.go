package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
)

// ScheduleCacheInvalidator drops a member's cached schedules after a write commits.
type ScheduleCacheInvalidator interface {
	Member(ctx context.Context, ref cache.MemberRef)
	Members(ctx context.Context, refs []cache.MemberRef)
}
