package search

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DegradedHeader lists sources that failed for this request, comma separated.
const DegradedHeader = "X-Search-Degraded"

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("SearchHandler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
}

func (h *Handler) search(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("search panicked", zap.Any("panic", r), zap.Stack("stack"))
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				hub.RecoverWithContext(c.Request.Context(), r)
			} else {
				sentry.CurrentHub().Recover(r)
			}
			fail(c, http.StatusInternalServerError, "Search failed")
		}
	}()

	q := c.Query("q")
	if !utf8.ValidString(q) {
		fail(c, http.StatusBadRequest, "Invalid search query")
		return
	}

	result := h.svc.Search(c.Request.Context(), q)
	if len(result.Degraded) > 0 {
		c.Header(DegradedHeader, strings.Join(result.Degraded, ","))
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, searchResponse{Results: result.Items})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message, Results: []Item{}})
}

