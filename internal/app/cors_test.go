package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern, host string
		want          bool
	}{
		{"stillhouse.example", "stillhouse.example", true},
		{"*.stillhouse.example", "shop.stillhouse.example", true},
		{"*.stillhouse.example", "stillhouse.example", false},
		{"*.stillhouse.example", "evilstillhouse.example", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "localhost.evil:3000", false},
		{"stillhouse.example", "other.example", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchOriginPattern(tc.pattern, tc.host), "%s vs %s", tc.pattern, tc.host)
	}
}

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "shop.example:8443", extractOriginHost("https://shop.example:8443"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestCORSConfig_Origins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{Env: "production", AllowedOrigins: []string{"*.stillhouse.example"}}
	r := gin.New()
	r.Use(cors.New(corsConfig(cfg)))
	r.GET("/api/site", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/site", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	ok := preflight("https://www.stillhouse.example")
	assert.Equal(t, "https://www.stillhouse.example", ok.Header().Get("Access-Control-Allow-Origin"))

	denied := preflight("https://attacker.example")
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
