package shop

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	HeaderHMAC  = "X-Shopify-Hmac-Sha256"
	HeaderTopic = "X-Shopify-Topic"

	maxWebhookBody = 1 << 20
)

// Purger drops cached HTTP responses and reports how many were removed.
type Purger func(ctx context.Context) (int64, error)

// catalogTopics are the webhook topic prefixes that change what the catalog returns.
var catalogTopics = []string{"products/", "collections/", "inventory_levels/"}

type WebhookHandler struct {
	secret  string
	catalog Catalog
	purge   Purger
	logger  *zap.Logger
}

func NewWebhookHandler(secret string, catalog Catalog, purge Purger, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{secret: secret, catalog: catalog, purge: purge, logger: logger.Named("ShopifyWebhook")}
}

func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/shopify", h.receive)
}

// Sign returns the base64 HMAC-SHA256 Shopify puts in X-Shopify-Hmac-Sha256.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret string, body []byte, signature string) bool {
	want, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}

func (h *WebhookHandler) receive(c *gin.Context) {
	if h.secret == "" {
		response.ServiceUnavailable(c, "Webhook secret is not configured")
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Unreadable body")
		return
	}
	if !verify(h.secret, body, c.GetHeader(HeaderHMAC)) {
		h.logger.Warn("webhook signature mismatch", zap.String("ip", c.ClientIP()))
		response.Unauthorized(c, "Invalid signature")
		return
	}

	topic := c.GetHeader(HeaderTopic)
	if !affectsCatalog(topic) {
		response.OK(c, gin.H{"topic": topic, "invalidated": false})
		return
	}

	ctx := c.Request.Context()
	if h.catalog != nil {
		if err := h.catalog.Invalidate(ctx); err != nil {
			h.logger.Error("catalog invalidation failed", zap.String("topic", topic), zap.Error(err))
			response.InternalError(c, err)
			return
		}
	}
	var purged int64
	if h.purge != nil {
		purged, err = h.purge(ctx)
		if err != nil {
			h.logger.Warn("http cache purge failed", zap.Error(err))
		}
	}
	h.logger.Info("catalog invalidated", zap.String("topic", topic), zap.Int64("purged", purged))
	response.OK(c, gin.H{"topic": topic, "invalidated": true, "purged": purged})
}

func affectsCatalog(topic string) bool {
	for _, prefix := range catalogTopics {
		if strings.HasPrefix(topic, prefix) {
			return true
		}
	}
	return false
}
