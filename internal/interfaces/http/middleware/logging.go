package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/id"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

const contextKeyRequestID = "request_id"

// RequestID echoes the caller's X-Request-ID, or a generated one, on the
// response and stores it for the request loggers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(constants.HeaderXRequestID)
		if rid == "" {
			generated, err := id.GenerateWithPrefix(id.PrefixRequest, id.DefaultLength)
			if err == nil {
				rid = generated
			}
		}
		if rid != "" {
			c.Set(contextKeyRequestID, rid)
			c.Header(constants.HeaderXRequestID, rid)
		}
		c.Next()
	}
}

// GetRequestID returns the id stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// Logger writes one line per request. Server errors log at error, client
// errors at warn and everything else at debug.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := requestFields(c)
		fields = append(fields,
			"status", status,
			"latency", time.Since(start),
			"body_size", c.Writer.Size(),
		)
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}

// requestFields identifies the request in log lines.
func requestFields(c *gin.Context) []any {
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields = append(fields, "query", q)
	}
	if rid := GetRequestID(c); rid != "" {
		fields = append(fields, "request_id", rid)
	}
	if establishmentID := GetEstablishmentID(c); establishmentID != 0 {
		fields = append(fields, "establishment_id", establishmentID)
	}
	return fields
}
