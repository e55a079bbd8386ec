package fieldmanual

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/pkg/pagination"
	"github.com/stillhouse/site/internal/pkg/response"
	"github.com/stillhouse/site/internal/sanity"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("FieldManualHandler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	fm := rg.Group("/field-manual")
	for _, k := range []Kind{KindCocktails, KindEquipment, KindIngredients} {
		fm.GET("/"+k.Name, h.list(k))
		fm.GET("/"+k.Name+"/:slug", h.detail(k))
	}
	rg.GET("/guides", h.list(KindGuides))
	rg.GET("/guides/:slug", h.detail(KindGuides))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sanity.ErrNotConfigured):
		response.ServiceUnavailable(c, "Content is not available")
	case errors.Is(err, sanity.ErrNotFound):
		response.NotFound(c)
	default:
		h.logger.Error("content request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.BadGateway(c, "Content is temporarily unavailable")
	}
}

func (h *Handler) list(k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards, err := h.svc.List(c.Request.Context(), k, c.Query("category"))
		if err != nil {
			h.fail(c, err)
			return
		}
		page, p := pagination.Apply(cards, pagination.FromContext(c))
		response.Paged(c, page, p)
	}
}

func (h *Handler) detail(k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.svc.Detail(c.Request.Context(), k, c.Param("slug"))
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, page)
	}
}
