package usecases

import (
	"context"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/cache"
)

// ScheduleCacheInvalidator drops cached schedules and plan lists after a write commits.
type ScheduleCacheInvalidator interface {
	Members(ctx context.Context, refs []cache.MemberRef)
	RpmList(ctx context.Context, establishmentID uint)
}
