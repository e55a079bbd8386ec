package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	CacheStatusHeader = "X-Stillhouse-Cache"
	APICachePrefix    = "stillhouse:http-cache:"

	defaultHTTPCacheTTL     = 15 * time.Second
	defaultHTTPCacheMaxBody = 1 << 20
	staleWhileRevalidate    = 60
)

// bypassParams force a fresh response when present; editors append one after
// publishing.
var bypassParams = []string{"ts", "preview"}

type HTTPCacheOptions struct {
	TTL time.Duration
	// CDNHeaders also sets CDN-Cache-Control so the edge keeps pages as long as Redis does.
	CDNHeaders   bool
	Disable      bool
	SkipPaths    []string
	MaxBodyBytes int
}

// cachedResponse is stored as JSON; encoding/json base64-encodes Body.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body"`
}

// captureWriter tees the body into buf and adds the shared cache headers
// just before the first byte goes out, while headers are still writable.
type captureWriter struct {
	gin.ResponseWriter
	opts      HTTPCacheOptions
	buf       bytes.Buffer
	overflow  bool
	decorated bool
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.decorate()
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.decorate()
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *captureWriter) decorate() {
	if w.decorated {
		return
	}
	w.decorated = true
	if isCacheableResponse(w.Status(), w.Header()) {
		setCacheHeaders(w.Header(), w.opts)
	}
}

func (w *captureWriter) capture(data []byte) {
	if w.overflow {
		return
	}
	if w.buf.Len()+len(data) > w.opts.MaxBodyBytes {
		w.overflow = true
		w.buf.Reset()
		return
	}
	w.buf.Write(data)
}

// HTTPCache keeps 200 GET responses in Redis for opts.TTL, keyed by request
// URI. Paths in SkipPaths (exact, or prefix with a trailing *) and responses
// marked no-store, no-cache or private are never stored. Without Redis it
// passes every request through.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	return httpCache(newStore(rdb), opts)
}

func httpCache(store kvStore, opts HTTPCacheOptions) gin.HandlerFunc {
	if opts.TTL <= 0 {
		opts.TTL = defaultHTTPCacheTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultHTTPCacheMaxBody
	}
	return func(c *gin.Context) {
		if store == nil || opts.Disable || c.Request.Method != http.MethodGet ||
			shouldSkipCachePath(c.Request.URL.Path, opts.SkipPaths) || wantsFresh(c) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := APICachePrefix + c.Request.URL.RequestURI()
		if entry, ok := loadResponse(ctx, store, key); ok {
			c.Header(CacheStatusHeader, "hit")
			setCacheHeaders(c.Writer.Header(), opts)
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		c.Header(CacheStatusHeader, "miss")
		w := &captureWriter{ResponseWriter: c.Writer, opts: opts}
		c.Writer = w
		c.Next()

		if w.overflow || w.buf.Len() == 0 || !isCacheableResponse(w.Status(), w.Header()) {
			return
		}
		raw, err := json.Marshal(cachedResponse{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		})
		if err != nil {
			return
		}
		_ = store.set(ctx, key, string(raw), opts.TTL)
	}
}

// PurgeHTTPCache deletes stored responses whose path starts with one of
// paths, or every stored response when paths is empty.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client, paths ...string) (int64, error) {
	store := newStore(rdb)
	if store == nil {
		return 0, nil
	}
	return purgeResponses(ctx, store, paths)
}

func purgeResponses(ctx context.Context, store kvStore, paths []string) (int64, error) {
	if len(paths) == 0 {
		paths = []string{""}
	}
	var deleted int64
	for _, p := range paths {
		keys, err := store.keys(ctx, APICachePrefix+p+"*")
		if err != nil {
			return deleted, err
		}
		n, err := store.del(ctx, keys...)
		deleted += n
		if err != nil {
			return deleted, err
		}
	}
	return deleted, nil
}

func loadResponse(ctx context.Context, store kvStore, key string) (cachedResponse, bool) {
	raw, ok, err := store.get(ctx, key)
	if err != nil || !ok {
		return cachedResponse{}, false
	}
	var entry cachedResponse
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.Status != http.StatusOK {
		return cachedResponse{}, false
	}
	if entry.ContentType == "" {
		entry.ContentType = "application/json; charset=utf-8"
	}
	return entry, true
}

func shouldSkipCachePath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		switch {
		case p == "":
		case strings.HasSuffix(p, "*"):
			if strings.HasPrefix(path, strings.TrimSuffix(p, "*")) {
				return true
			}
		case path == p:
			return true
		}
	}
	return false
}

func wantsFresh(c *gin.Context) bool {
	query := c.Request.URL.Query()
	for _, key := range bypassParams {
		if query.Has(key) {
			return true
		}
	}
	return false
}

func isCacheableResponse(status int, headers http.Header) bool {
	if status != http.StatusOK {
		return false
	}
	cc := strings.ToLower(headers.Get("Cache-Control"))
	return !strings.Contains(cc, "no-cache") &&
		!strings.Contains(cc, "no-store") &&
		!strings.Contains(cc, "private")
}

// setCacheHeaders leaves a Cache-Control chosen by the handler alone.
func setCacheHeaders(h http.Header, opts HTTPCacheOptions) {
	ttl := int(opts.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	if opts.CDNHeaders {
		edge := fmt.Sprintf("max-age=%d, stale-while-revalidate=%d", ttl, staleWhileRevalidate)
		h.Set("CDN-Cache-Control", edge)
		h.Set("Cloudflare-CDN-Cache-Control", edge)
	}
	if h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", ttl, staleWhileRevalidate))
	}
}
