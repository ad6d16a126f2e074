package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// bindJSON decodes the request body, reporting malformed JSON as a validation error.
// Field rules are enforced by the use cases.
func bindJSON(c *gin.Context, log logger.Interface, target interface{}, action string) error {
	if err := c.ShouldBindJSON(target); err != nil {
		log.Warnw("invalid request body for "+action, "error", err)
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return nil
}
