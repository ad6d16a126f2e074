package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// ParseUintParam parses a positive numeric ID from a URL path parameter.
// entityName is used in error messages (e.g., "assignment").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}
	return parsePositiveID(raw, entityName+" ID")
}

// ParseEstablishmentID reads the acting establishment from the request header.
// The header is set by the authenticating gateway in front of this service.
func ParseEstablishmentID(c *gin.Context) (uint, error) {
	raw := strings.TrimSpace(c.GetHeader(constants.HeaderEstablishmentID))
	if raw == "" {
		return 0, errors.NewBadRequestError(constants.HeaderEstablishmentID + " header is required")
	}
	return parsePositiveID(raw, "establishment ID")
}

// ParseOptionalUintQuery parses an optional positive numeric query parameter; absent yields 0.
func ParseOptionalUintQuery(c *gin.Context, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return parsePositiveID(raw, key)
}

func parsePositiveID(raw, label string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + label)
	}
	return uint(n), nil
}
