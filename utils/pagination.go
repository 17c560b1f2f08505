package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination carries the page window requested by the client.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageMeta describes the full result set for a paginated response.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParsePagination reads page/limit query params with sane bounds.
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of documents to skip for this window.
func (p Pagination) Offset() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Meta computes the response metadata for a total count.
func (p Pagination) Meta(total int64) PageMeta {
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}
	return PageMeta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}
