package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/utils"
)

// RequireEstablishment reads the acting establishment set by the
// authenticating gateway and stores it in the request context.
func RequireEstablishment(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		establishmentID, err := utils.ParseEstablishmentID(c)
		if err != nil {
			log.Warnw("request without usable establishment header",
				"path", c.Request.URL.Path,
				"error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEstablishmentID, establishmentID)
		c.Next()
	}
}

// GetEstablishmentID returns the establishment stored by RequireEstablishment, or 0.
func GetEstablishmentID(c *gin.Context) uint {
	return c.GetUint(constants.ContextKeyEstablishmentID)
}
