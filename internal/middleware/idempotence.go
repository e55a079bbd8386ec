package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stillhouse/site/internal/pkg/response"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	idempotenceTTL    = 60 * time.Second
	idempotencePrefix = "stillhouse:idempotence:"
	maxIdempotentBody = 64 << 10

	submissionPending = "0"
	submissionDone    = "1"
)

// Idempotence rejects a repeated POST/PUT with 409 for 60 seconds after the
// first one succeeded, or while it is still running. Requests are keyed by the
// Idempotency-Key header, else by a hash of method, URL, body, agent and IP.
// Without Redis it is a no-op.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return idempotence(newStore(rdb))
}

func idempotence(store kvStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut) {
			c.Next()
			return
		}

		key, err := resolveIdempotenceKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}
		storeKey := idempotencePrefix + key
		ctx := c.Request.Context()

		// The claim and the check are one SETNX, so two identical requests
		// racing each other cannot both get through.
		claimed, err := store.setNX(ctx, storeKey, submissionPending, idempotenceTTL)
		if err != nil {
			c.Next()
			return
		}
		if !claimed {
			msg := "This request was already received, please wait a minute before sending it again"
			if val, ok, _ := store.get(ctx, storeKey); ok && val == submissionPending {
				msg = "This request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			_ = store.set(ctx, storeKey, submissionDone, keepTTL)
		} else {
			_, _ = store.del(ctx, storeKey)
		}
	}
}

// resolveIdempotenceKey returns the idempotence key for the current request.
func resolveIdempotenceKey(c *gin.Context) (string, error) {
	if hdr := c.GetHeader(IdempotencyHeader); hdr != "" {
		h := sha256.Sum256([]byte(c.Request.URL.Path + "|" + hdr))
		return hex.EncodeToString(h[:]), nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody))
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	ua := c.Request.UserAgent()
	ip := c.ClientIP()
	if len(body) == 0 && ua == "" && ip == "" {
		return "", nil
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + ua + "|" + ip
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:]), nil
}
