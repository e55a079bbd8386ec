// Package consent stores cookie consent preferences in a first-party cookie.
package consent

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stillhouse/site/internal/pkg/response"
)

const (
	CookieName = "cookie_consent"
	// Version is bumped when the consent categories change; older records
	// are treated as undecided.
	Version   = 1
	cookieAge = 365 * 24 * time.Hour
)

// Preferences is what the banner reads and writes.
type Preferences struct {
	ID        string    `json:"id,omitempty"`
	Version   int       `json:"version"`
	Necessary bool      `json:"necessary"`
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
	Decided   bool      `json:"decided"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Defaults is the state before the visitor chooses: only necessary cookies.
func Defaults() Preferences {
	return Preferences{Version: Version, Necessary: true}
}

// Decode reads a cookie value. Anything malformed or from an older version
// reads as Defaults.
func Decode(value string) Preferences {
	if value == "" {
		return Defaults()
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Defaults()
	}
	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil || p.Version != Version || p.ID == "" {
		return Defaults()
	}
	p.Necessary = true
	p.Decided = true
	return p
}

func Encode(p Preferences) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

type updateDTO struct {
	Analytics *bool `json:"analytics" binding:"required"`
	Marketing *bool `json:"marketing" binding:"required"`
}

type Handler struct {
	secure bool
	now    func() time.Time
}

func NewHandler(secureCookie bool) *Handler {
	return &Handler{secure: secureCookie, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/consent", h.get)
	rg.PUT("/consent", h.put)
	rg.DELETE("/consent", h.clear)
}

func (h *Handler) current(c *gin.Context) Preferences {
	value, err := c.Cookie(CookieName)
	if err != nil {
		return Defaults()
	}
	return Decode(value)
}

func (h *Handler) get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	response.OK(c, h.current(c))
}

func (h *Handler) put(c *gin.Context) {
	var dto updateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, "analytics and marketing must be booleans")
		return
	}
	prev := h.current(c)
	p := Preferences{
		ID:        prev.ID,
		Version:   Version,
		Necessary: true,
		Analytics: *dto.Analytics,
		Marketing: *dto.Marketing,
		Decided:   true,
		UpdatedAt: h.now().UTC().Truncate(time.Second),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	value, err := Encode(p)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	// Readable by the banner script, so not HttpOnly.
	c.SetCookie(CookieName, value, int(cookieAge/time.Second), "/", "", h.secure, false)
	c.Header("Cache-Control", "no-store")
	response.OK(c, p)
}

func (h *Handler) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.secure, false)
	c.Header("Cache-Control", "no-store")
	response.OK(c, Defaults())
}
