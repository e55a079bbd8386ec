package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stillhouse/site/internal/catalog"
	"github.com/stillhouse/site/internal/klaviyo"
	"github.com/stillhouse/site/internal/middleware"
	"github.com/stillhouse/site/internal/modules/consent"
	"github.com/stillhouse/site/internal/modules/fieldmanual"
	"github.com/stillhouse/site/internal/modules/forms"
	"github.com/stillhouse/site/internal/modules/health"
	"github.com/stillhouse/site/internal/modules/search"
	"github.com/stillhouse/site/internal/modules/seo"
	"github.com/stillhouse/site/internal/modules/shop"
	"github.com/stillhouse/site/internal/pkg/imageloader"
	"github.com/stillhouse/site/internal/pkg/mail"
	"github.com/stillhouse/site/internal/pkg/response"
	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
)

const (
	apiPrefix            = "/api"
	searchDegradedHeader = search.DegradedHeader
)

// httpCacheSkipPaths lists API routes whose answers depend on the visitor or
// must stay fresh.
func httpCacheSkipPaths(prefix string) []string {
	return []string{
		prefix + "/search",
		prefix + "/cart*",
		prefix + "/consent",
		prefix + "/health",
		prefix + "/webhooks*",
	}
}

func (a *App) registerRoutes() {
	r := a.router
	cfg := a.cfg
	logger := a.logger
	rdb := a.redis.Raw()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Backends
	commerce := shopify.New(shopify.Config{
		StoreDomain: cfg.Shopify.StoreDomain,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		Timeout:     cfg.Shopify.Timeout,
	})
	content := sanity.New(sanity.Config{
		ProjectID:  cfg.Sanity.ProjectID,
		Dataset:    cfg.Sanity.Dataset,
		APIVersion: cfg.Sanity.APIVersion,
		Token:      cfg.Sanity.Token,
		UseCDN:     cfg.Sanity.UseCDN,
		Timeout:    cfg.Sanity.Timeout,
	})
	newsletter := klaviyo.New(klaviyo.Config{
		APIKey:   cfg.Klaviyo.APIKey,
		ListID:   cfg.Klaviyo.ListID,
		Revision: cfg.Klaviyo.Revision,
	})
	mailer := mail.New(mail.BuildMailConfig(cfg.Mail))

	catalogOpts := []catalog.Option{catalog.WithLogger(logger)}
	if rdb != nil {
		catalogOpts = append(catalogOpts, catalog.WithRedis(rdb))
	}
	products := catalog.New(commerce, cfg.Search.CatalogTTL, catalogOpts...)

	site := seo.Site{
		Name:        cfg.Site.Name,
		URL:         cfg.Site.URL,
		Description: cfg.Site.Description,
		Logo:        cfg.Site.Logo,
		SameAs:      cfg.Site.SameAs,
	}
	images := imageloader.New(cfg.Images.Zone, cfg.Images.Quality)
	secureCookies := !cfg.IsDev()

	// Root-level endpoints
	root := r.Group("")
	api := r.Group(apiPrefix)
	seo.NewHandler(site,
		seo.NewSitemap(site, products, content, logger),
		seo.NewFeed(site, content, logger),
	).RegisterRoutes(root, api)

	health.RegisterRoutes(api, health.Deps{
		Commerce:   commerce,
		Content:    content,
		Newsletter: newsletter,
		Mail:       mailer,
		Redis:      a.pinger(),
		Started:    a.started,
	})

	purge := func(ctx context.Context) (int64, error) {
		return middleware.PurgeHTTPCache(ctx, rdb, apiPrefix+"/shop")
	}
	shop.NewWebhookHandler(cfg.Shopify.WebhookSecret, products, purge, logger).RegisterRoutes(api)

	// Forms write to third parties; rate limit and reject replays first.
	forms.NewHandler(newsletter, mailer, cfg.Mail.To, cfg.Site.Name, logger).RegisterRoutes(api,
		middleware.RateLimit(rdb, middleware.RateLimitOptions{
			Name:   "forms",
			Max:    cfg.FormRateLimit,
			Window: time.Minute,
			Logger: logger,
		}),
		middleware.Idempotence(rdb),
	)
	consent.NewHandler(secureCookies).RegisterRoutes(api)

	// Public content below is shared by every visitor and may be cached.
	cached := api.Group("")
	cached.Use(middleware.HTTPCache(rdb, middleware.HTTPCacheOptions{
		TTL:             cfg.HTTPCache.TTL,
		CDNHeaders:      true,
		Disable:         !cfg.HTTPCache.Enable || cfg.IsDev(),
		SkipPaths:       httpCacheSkipPaths(apiPrefix),
	}))

	searchSvc := search.NewService(products, content,
		search.WithLogger(logger),
		search.WithSourceTimeout(cfg.Search.SourceTimeout),
	)
	search.NewHandler(searchSvc, logger).RegisterRoutes(cached)

	shopSvc := shop.NewService(commerce, products, site, images, shop.WithLogger(logger))
	shop.NewHandler(shopSvc, logger, secureCookies).RegisterRoutes(cached)

	fieldmanual.NewHandler(fieldmanual.NewService(content, site, images), logger).RegisterRoutes(cached)
}

// pinger keeps a missing Redis out of the health check instead of reporting it down.
func (a *App) pinger() health.Pinger {
	if a.redis == nil {
		return nil
	}
	return a.redis
}
