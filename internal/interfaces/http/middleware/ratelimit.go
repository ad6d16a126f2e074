package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/ratelimit"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// RateLimiter enforces a request quota per establishment. Counters live in
// Redis so every API instance shares them.
type RateLimiter struct {
	limiter ratelimit.Limiter
	quota   ratelimit.Quota
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, quota ratelimit.Quota, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		quota:   quota,
		logger:  log,
	}
}

// Limit returns a Gin middleware that enforces the quota per establishment,
// falling back to the client IP before the establishment is known.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if establishmentID := GetEstablishmentID(c); establishmentID != 0 {
			subject = fmt.Sprintf("est:%d", establishmentID)
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), subject, rl.quota)
		if err != nil {
			// Redis being down must not block all traffic.
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewRateLimitError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
