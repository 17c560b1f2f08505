package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) Pagination {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/bookings?"+query, nil)
	return ParsePagination(c)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero page falls back", "page=0", 1, 10},
		{"negative limit falls back", "limit=-5", 1, 10},
		{"garbage falls back", "page=abc&limit=xyz", 1, 10},
		{"limit capped", "limit=5000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginationFor(t, tt.query)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, int64(0), Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, int64(40), Pagination{Page: 5, Limit: 10}.Offset())
}

func TestPaginationMeta(t *testing.T) {
	meta := Pagination{Page: 2, Limit: 10}.Meta(42)
	assert.Equal(t, int64(5), meta.TotalPages)
	assert.Equal(t, int64(42), meta.Total)

	meta = Pagination{Page: 1, Limit: 10}.Meta(40)
	assert.Equal(t, int64(4), meta.TotalPages)

	meta = Pagination{Page: 1, Limit: 10}.Meta(0)
	assert.Equal(t, int64(0), meta.TotalPages)
}
