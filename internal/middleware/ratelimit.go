package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/stillhouse/site/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	defaultRateLimitWindow = time.Minute
	rateLimitPrefix        = "stillhouse:rate_limit:"
	localCounterSize       = 10000
)

type RateLimitOptions struct {
	// Name separates counters of different limited route groups.
	Name   string
	Max    int
	Window time.Duration
	Logger *zap.Logger
}

// counter counts hits per key within the current window.
type counter interface {
	incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	rdb *redis.Client
}

func (r redisCounter) incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.rdb.PExpire(ctx, key, window+time.Second)
	}
	return count, nil
}

// localCounter keeps windows in process when Redis is not configured.
type localCounter struct {
	mu     sync.Mutex
	counts *expirable.LRU[string, int64]
}

func newLocalCounter(window time.Duration) *localCounter {
	return &localCounter{counts: expirable.NewLRU[string, int64](localCounterSize, nil, window+time.Second)}
}

func (l *localCounter) incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, _ := l.counts.Get(key)
	n++
	l.counts.Add(key, n)
	return n, nil
}

// RateLimit enforces a fixed-window limit of opts.Max requests per client IP.
// Counters live in Redis when rdb is set, otherwise in process. A Redis error
// lets the request through.
func RateLimit(rdb *redis.Client, opts RateLimitOptions) gin.HandlerFunc {
	if opts.Window <= 0 {
		opts.Window = defaultRateLimitWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("RateLimit")

	var store counter
	if rdb != nil {
		store = redisCounter{rdb: rdb}
	} else {
		store = newLocalCounter(opts.Window)
	}
	retryAfter := strconv.Itoa(int(opts.Window / time.Second))

	return func(c *gin.Context) {
		if opts.Max <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		window := time.Now().UnixNano() / int64(opts.Window)
		key := fmt.Sprintf("%s%s:%s:%d", rateLimitPrefix, opts.Name, ip, window)
		count, err := store.incr(c.Request.Context(), key, opts.Window)
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(opts.Max) {
			logger.Info("rate limited", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
