package shop

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/pkg/pagination"
	"github.com/stillhouse/site/internal/pkg/response"
	"github.com/stillhouse/site/internal/shopify"
	"go.uber.org/zap"
)

const (
	CartCookie    = "cart_id"
	cartCookieAge = 10 * 24 * time.Hour
)

type Handler struct {
	svc          *Service
	logger       *zap.Logger
	secureCookie bool
}

func NewHandler(svc *Service, logger *zap.Logger, secureCookie bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("ShopHandler"), secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	shop := rg.Group("/shop")
	shop.GET("/products", h.listProducts)
	shop.GET("/products/:handle", h.getProduct)
	shop.GET("/collections", h.listCollections)
	shop.GET("/collections/:handle", h.getCollection)

	cart := rg.Group("/cart")
	cart.GET("", h.getCart)
	cart.POST("/lines", h.addLines)
	cart.PATCH("/lines", h.updateLines)
	cart.DELETE("/lines", h.removeLines)
}

// fail maps shop errors onto HTTP statuses. Upstream failures are logged and
// surface as 502 without the upstream detail.
func (h *Handler) fail(c *gin.Context, err error) {
	var ue shopify.UserErrors
	switch {
	case errors.Is(err, shopify.ErrNotConfigured):
		response.ServiceUnavailable(c, "Shop is not available")
	case errors.Is(err, shopify.ErrNotFound):
		response.NotFound(c)
	case errors.As(err, &ue):
		response.UnprocessableEntity(c, ue.Error())
	default:
		h.logger.Error("shop request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.BadGateway(c, "Shop is temporarily unavailable")
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	cards, err := h.svc.Products(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.fail(c, err)
		return
	}
	page, p := pagination.Apply(cards, pagination.FromContext(c))
	response.Paged(c, page, p)
}

func (h *Handler) getProduct(c *gin.Context) {
	page, err := h.svc.Product(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) listCollections(c *gin.Context) {
	cards, err := h.svc.Collections(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, cards)
}

func (h *Handler) getCollection(c *gin.Context) {
	page, err := h.svc.Collection(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) cartID(c *gin.Context) string {
	id, err := c.Cookie(CartCookie)
	if err != nil {
		return ""
	}
	return id
}

func (h *Handler) setCartCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCookie, id, int(cartCookieAge/time.Second), "/", "", h.secureCookie, true)
}

func (h *Handler) clearCartCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CartCookie, "", -1, "/", "", h.secureCookie, true)
}

func (h *Handler) respondCart(c *gin.Context, cart *shopify.Cart, err error) {
	if errors.Is(err, shopify.ErrNotFound) {
		h.clearCartCookie(c)
		response.NotFoundMsg(c, "Cart not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	response.OK(c, cart)
}

func (h *Handler) getCart(c *gin.Context) {
	id := h.cartID(c)
	cart, found, err := h.svc.Cart(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if id != "" && !found {
		h.clearCartCookie(c)
	}
	c.Header("Cache-Control", "no-store")
	response.OK(c, cart)
}

type addLine struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1,max=99"`
}

type addLinesDTO struct {
	Lines []addLine `json:"lines" binding:"required,min=1,dive"`
}

func (h *Handler) addLines(c *gin.Context) {
	var dto addLinesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	lines := make([]shopify.CartLineInput, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, shopify.CartLineInput{MerchandiseID: l.MerchandiseID, Quantity: l.Quantity})
	}
	cart, err := h.svc.AddLines(c.Request.Context(), h.cartID(c), lines)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setCartCookie(c, cart.ID)
	c.Header("Cache-Control", "no-store")
	response.OK(c, cart)
}

type updateLine struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0,max=99"`
}

type updateLinesDTO struct {
	Lines []updateLine `json:"lines" binding:"required,min=1,dive"`
}

func (h *Handler) updateLines(c *gin.Context) {
	var dto updateLinesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	lines := make([]shopify.CartLineUpdate, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, shopify.CartLineUpdate{ID: l.ID, Quantity: l.Quantity})
	}
	cart, err := h.svc.UpdateLines(c.Request.Context(), h.cartID(c), lines)
	h.respondCart(c, cart, err)
}

type removeLinesDTO struct {
	LineIDs []string `json:"lineIds" binding:"required,min=1,dive,required"`
}

func (h *Handler) removeLines(c *gin.Context) {
	var dto removeLinesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	cart, err := h.svc.RemoveLines(c.Request.Context(), h.cartID(c), dto.LineIDs)
	h.respondCart(c, cart, err)
}
