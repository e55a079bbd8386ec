package seo

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	site    Site
	sitemap *Sitemap
	feed    *Feed
}

// NewHandler serves the sitemap and robots.txt. feed may be nil.
func NewHandler(site Site, sitemap *Sitemap, feed *Feed) *Handler {
	return &Handler{site: site, sitemap: sitemap, feed: feed}
}

// RegisterRoutes mounts the crawler surfaces on root and the site payload on api.
func (h *Handler) RegisterRoutes(root gin.IRoutes, api *gin.RouterGroup) {
	root.GET("/sitemap.xml", h.renderSitemap)
	root.GET("/robots.txt", h.renderRobots)
	if h.feed != nil {
		root.GET("/feed.xml", h.renderRSS)
		root.GET("/atom.xml", h.renderAtom)
	}
	api.GET("/site", h.siteInfo)
}

func (h *Handler) renderSitemap(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(h.sitemap.Build(c.Request.Context())))
}

func (h *Handler) renderRSS(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=900")
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(h.feed.RSS(c.Request.Context())))
}

func (h *Handler) renderAtom(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=900")
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(h.feed.Atom(c.Request.Context())))
}

func (h *Handler) renderRobots(c *gin.Context) {
	c.String(http.StatusOK, h.site.Robots())
}

type sitePayload struct {
	Metadata     Metadata     `json:"metadata"`
	Organization Organization `json:"organization"`
	WebSite      WebSite      `json:"website"`
}

func (h *Handler) siteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, sitePayload{
		Metadata:     h.site.Metadata(PageInput{Path: "/"}),
		Organization: h.site.OrganizationLD(),
		WebSite:      h.site.WebSiteLD(),
	})
}
