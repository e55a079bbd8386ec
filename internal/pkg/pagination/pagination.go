package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/pkg/response"
)

const (
	DefaultPage = 1
	DefaultSize = 12
	MaxSize     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	size := parseIntOr(c.DefaultQuery("size", strconv.Itoa(DefaultSize)), DefaultSize)

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Query{Page: page, Size: size}
}

// Apply slices an in-memory result set for the requested page. Upstream
// platforms return whole listings, so paging happens here.
func Apply[T any](items []T, q Query) ([]T, response.Pagination) {
	total := len(items)
	totalPage := (total + q.Size - 1) / q.Size
	start := (q.Page - 1) * q.Size
	if start > total {
		start = total
	}
	end := start + q.Size
	if end > total {
		end = total
	}
	return items[start:end], response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
