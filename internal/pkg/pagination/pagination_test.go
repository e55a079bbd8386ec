package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name  string
		query string
		want  Query
	}{
		{name: "defaults", query: "", want: Query{Page: 1, Size: DefaultSize}},
		{name: "explicit", query: "?page=3&size=5", want: Query{Page: 3, Size: 5}},
		{name: "garbage", query: "?page=x&size=y", want: Query{Page: 1, Size: DefaultSize}},
		{name: "clamped", query: "?page=-2&size=1000", want: Query{Page: 1, Size: MaxSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.want, FromContext(c))
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Apply(items, Query{Page: 2, Size: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPage)
	assert.True(t, meta.HasNextPage)

	page, meta = Apply(items, Query{Page: 3, Size: 2})
	assert.Equal(t, []int{5}, page)
	assert.False(t, meta.HasNextPage)

	page, _ = Apply(items, Query{Page: 9, Size: 2})
	assert.Empty(t, page)
}
