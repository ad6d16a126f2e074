package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

var (
	corsAllowHeaders = strings.Join([]string{
		"Content-Type", "Content-Length", "Accept", "Accept-Encoding", "Origin",
		"Cache-Control", "X-Requested-With", constants.HeaderXRequestID, constants.HeaderEstablishmentID,
	}, ", ")
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

// CORS answers cross-origin callers listed in allowedOrigins; "*" admits
// any origin and an empty list only serves same-origin requests. Preflight
// requests stop here with 204.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if allowed := matchOrigin(c.GetHeader("Origin"), allowedOrigins); allowed != "" {
			h.Set("Access-Control-Allow-Origin", allowed)
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Expose-Headers", "Content-Length, "+constants.HeaderXRequestID)
		h.Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func matchOrigin(origin string, allowed []string) string {
	for _, a := range allowed {
		switch {
		case a == "*":
			return "*"
		case origin != "" && a == origin:
			return origin
		}
	}
	return ""
}
