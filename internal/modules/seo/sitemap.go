package seo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stillhouse/site/internal/modules/search"
	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
	"go.uber.org/zap"
)

// ProductLister feeds product URLs into the sitemap.
type ProductLister interface {
	Configured() bool
	Products(ctx context.Context) ([]shopify.Product, error)
}

// ContentLister feeds editorial URLs into the sitemap.
type ContentLister interface {
	Configured() bool
	Cocktails(ctx context.Context, category string) ([]sanity.Cocktail, error)
	EquipmentList(ctx context.Context, category string) ([]sanity.Equipment, error)
	Ingredients(ctx context.Context, category string) ([]sanity.Ingredient, error)
	Guides(ctx context.Context, category string) ([]sanity.Guide, error)
}

type sitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// Sitemap assembles sitemap.xml from the static page index and both backends.
type Sitemap struct {
	site     Site
	products ProductLister
	content  ContentLister
	pages    []search.Item
	logger   *zap.Logger
	now      func() time.Time
}

func NewSitemap(site Site, products ProductLister, content ContentLister, logger *zap.Logger) *Sitemap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sitemap{
		site:     site,
		products: products,
		content:  content,
		pages:    search.StaticPages(),
		logger:   logger.Named("Sitemap"),
		now:      time.Now,
	}
}

// Build never fails; a backend that errors is logged and left out.
func (s *Sitemap) Build(ctx context.Context) string {
	now := s.now()
	var urls []sitemapURL
	seen := map[string]bool{}
	add := func(path string, lastMod time.Time, freq string, priority float64) {
		if strings.Contains(path, "?") || seen[path] {
			return
		}
		seen[path] = true
		urls = append(urls, sitemapURL{Loc: s.site.Absolute(path), LastMod: orNow(lastMod, now), ChangeFreq: freq, Priority: priority})
	}

	add("/", now, "daily", 1.0)
	for _, p := range s.pages {
		add(p.URL, now, "monthly", 0.5)
	}

	if s.products != nil && s.products.Configured() {
		products, err := s.products.Products(ctx)
		if err != nil {
			s.logger.Warn("sitemap products skipped", zap.Error(err))
		}
		for _, p := range products {
			add(p.URL(), p.UpdatedAt, "weekly", 0.8)
		}
	}

	if s.content != nil && s.content.Configured() {
		if docs, err := s.content.Cocktails(ctx, ""); err != nil {
			s.logger.Warn("sitemap cocktails skipped", zap.Error(err))
		} else {
			for _, d := range docs {
				add("/field-manual/cocktails/"+d.Slug, d.UpdatedAt, "monthly", 0.7)
			}
		}
		if docs, err := s.content.EquipmentList(ctx, ""); err != nil {
			s.logger.Warn("sitemap equipment skipped", zap.Error(err))
		} else {
			for _, d := range docs {
				add("/field-manual/equipment/"+d.Slug, d.UpdatedAt, "monthly", 0.6)
			}
		}
		if docs, err := s.content.Ingredients(ctx, ""); err != nil {
			s.logger.Warn("sitemap ingredients skipped", zap.Error(err))
		} else {
			for _, d := range docs {
				add("/field-manual/ingredients/"+d.Slug, d.UpdatedAt, "monthly", 0.6)
			}
		}
		if docs, err := s.content.Guides(ctx, ""); err != nil {
			s.logger.Warn("sitemap guides skipped", zap.Error(err))
		} else {
			for _, d := range docs {
				add("/guides/"+d.Slug, d.UpdatedAt, "weekly", 0.7)
			}
		}
	}

	return renderXML(urls)
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

func renderXML(urls []sitemapURL) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for _, u := range urls {
		fmt.Fprintf(&b, `  <url>
    <loc>%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, escapeXML(u.Loc), u.LastMod.Format("2006-01-02"), u.ChangeFreq, u.Priority)
	}
	b.WriteString(`</urlset>`)
	return b.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
