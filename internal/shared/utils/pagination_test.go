package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "valid values", page: 2, pageSize: 20, wantPage: 2, wantPageSize: 20},
		{name: "page below one", page: 0, pageSize: 20, wantPage: constants.DefaultPage, wantPageSize: 20},
		{name: "negative page size", page: 1, pageSize: -5, wantPage: 1, wantPageSize: constants.DefaultPageSize},
		{name: "page size capped", page: 1, pageSize: 1000, wantPage: 1, wantPageSize: constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{query: "", wantPage: constants.DefaultPage, wantPageSize: constants.DefaultPageSize},
		{query: "page=3&page_size=5", wantPage: 3, wantPageSize: 5},
		{query: "page=abc&page_size=0", wantPage: constants.DefaultPage, wantPageSize: constants.DefaultPageSize},
		{query: "page_size=500", wantPage: constants.DefaultPage, wantPageSize: constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got := ParsePagination(c)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}
