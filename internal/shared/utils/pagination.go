package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination replaces non-positive values with the defaults and caps
// the page size at constants.MaxPageSize.
func ValidatePagination(page, pageSize int) Pagination {
	p := Pagination{Page: page, PageSize: pageSize}
	if p.Page < 1 {
		p.Page = constants.DefaultPage
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = constants.DefaultPageSize
	case p.PageSize > constants.MaxPageSize:
		p.PageSize = constants.MaxPageSize
	}
	return p
}

// ParsePagination reads ?page and ?page_size. Unparsable values fall back to
// the defaults.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(queryInt(c, "page"), queryInt(c, "page_size"))
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// TotalPages is the number of pages needed for total rows, at least one.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
