package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedRouter(store kvStore, opts HTTPCacheOptions) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.Use(httpCache(store, opts))
	r.GET("/api/shop/products", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"name": "Highland Malt"})
	})
	r.GET("/api/guides", func(c *gin.Context) {
		calls++
		c.Header("Cache-Control", "no-store")
		c.String(http.StatusOK, "fresh")
	})
	r.GET("/api/cart", func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "cart")
	})
	r.GET("/api/recipes/missing", func(c *gin.Context) {
		calls++
		c.String(http.StatusNotFound, "gone")
	})
	return r, &calls
}

func getURL(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHTTPCache_MissThenHit(t *testing.T) {
	store := newMemStore()
	r, calls := cachedRouter(store, HTTPCacheOptions{TTL: time.Minute, CDNHeaders: true})

	first := getURL(r, "/api/shop/products")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get(CacheStatusHeader))
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=60", first.Header().Get("Cache-Control"))
	assert.Equal(t, "max-age=60, stale-while-revalidate=60", first.Header().Get("CDN-Cache-Control"))

	second := getURL(r, "/api/shop/products")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get(CacheStatusHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
	assert.Equal(t, "public, s-maxage=60, stale-while-revalidate=60", second.Header().Get("Cache-Control"))
	assert.Equal(t, 1, *calls)

	// Query strings are part of the key.
	third := getURL(r, "/api/shop/products?page=2")
	assert.Equal(t, "miss", third.Header().Get(CacheStatusHeader))
	assert.Equal(t, 2, *calls)
}

func TestHTTPCache_NotStored(t *testing.T) {
	store := newMemStore()
	r, calls := cachedRouter(store, HTTPCacheOptions{TTL: time.Minute, SkipPaths: []string{"/api/cart*"}})

	for i := 0; i < 2; i++ {
		w := getURL(r, "/api/guides")
		assert.Equal(t, "miss", w.Header().Get(CacheStatusHeader))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	}
	for i := 0; i < 2; i++ {
		w := getURL(r, "/api/recipes/missing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Header().Get("Cache-Control"))
	}
	for i := 0; i < 2; i++ {
		assert.Empty(t, getURL(r, "/api/cart").Header().Get(CacheStatusHeader))
	}
	assert.Equal(t, 6, *calls)

	keys, _ := store.keys(context.Background(), APICachePrefix+"*")
	assert.Empty(t, keys)
}

func TestHTTPCache_BypassAndOversize(t *testing.T) {
	store := newMemStore()
	r, calls := cachedRouter(store, HTTPCacheOptions{TTL: time.Minute})

	getURL(r, "/api/shop/products")
	w := getURL(r, "/api/shop/products?ts=1700000000")
	assert.Empty(t, w.Header().Get(CacheStatusHeader))
	assert.Equal(t, 2, *calls)

	small, smallCalls := cachedRouter(newMemStore(), HTTPCacheOptions{TTL: time.Minute, MaxBodyBytes: 8})
	getURL(small, "/api/shop/products")
	assert.Equal(t, "miss", getURL(small, "/api/shop/products").Header().Get(CacheStatusHeader))
	assert.Equal(t, 2, *smallCalls)
}

func TestPurgeResponses_ByPrefix(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	for _, uri := range []string{"/api/shop/products", "/api/shop/products?page=2", "/api/shop/products/malt", "/api/guides"} {
		require.NoError(t, store.set(ctx, APICachePrefix+uri, `{"status":200}`, time.Minute))
	}
	require.NoError(t, store.set(ctx, idempotencePrefix+"abc", "1", time.Minute))

	n, err := purgeResponses(ctx, store, []string{"/api/shop"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, _ := store.keys(ctx, APICachePrefix+"*")
	assert.Equal(t, []string{APICachePrefix + "/api/guides"}, left)

	n, err = purgeResponses(ctx, store, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, ok, _ := store.get(ctx, idempotencePrefix+"abc")
	assert.True(t, ok, "only cached responses are purged")
}
