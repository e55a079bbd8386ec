package seo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stillhouse/site/internal/sanity"
	"go.uber.org/zap"
)

const feedSize = 20

// GuideLister feeds published guides into the RSS and Atom feeds.
type GuideLister interface {
	Configured() bool
	Guides(ctx context.Context, category string) ([]sanity.Guide, error)
}

type feedItem struct {
	Title   string
	Link    string
	GUID    string
	PubDate time.Time
	Summary string
}

// Feed publishes the newest guides.
type Feed struct {
	site   Site
	guides GuideLister
	logger *zap.Logger
	now    func() time.Time
}

func NewFeed(site Site, guides GuideLister, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{site: site, guides: guides, logger: logger.Named("Feed"), now: time.Now}
}

// items returns at most feedSize guides, newest first. A failing backend
// yields an empty feed.
func (f *Feed) items(ctx context.Context) []feedItem {
	if f.guides == nil || !f.guides.Configured() {
		return nil
	}
	guides, err := f.guides.Guides(ctx, "")
	if err != nil {
		f.logger.Warn("feed guides skipped", zap.Error(err))
		return nil
	}
	published := func(g sanity.Guide) time.Time {
		if g.PublishedAt != nil {
			return *g.PublishedAt
		}
		return g.UpdatedAt
	}
	sort.SliceStable(guides, func(i, j int) bool {
		return published(guides[i]).After(published(guides[j]))
	})
	if len(guides) > feedSize {
		guides = guides[:feedSize]
	}

	items := make([]feedItem, 0, len(guides))
	for _, g := range guides {
		summary := g.Excerpt
		if summary == "" {
			summary = g.Introduction
		}
		link := f.site.Absolute("/guides/" + g.Slug)
		items = append(items, feedItem{
			Title:   g.Title,
			Link:    link,
			GUID:    link,
			PubDate: orNow(published(g), f.now()),
			Summary: summary,
		})
	}
	return items
}

func (f *Feed) RSS(ctx context.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>%s</title>
    <link>%s</link>
    <description>%s</description>
    <lastBuildDate>%s</lastBuildDate>
`, escapeXML(f.site.Name), escapeXML(f.site.Absolute("/guides")), escapeXML(f.site.Description), f.now().Format(time.RFC1123Z))

	for _, item := range f.items(ctx) {
		fmt.Fprintf(&b, `    <item>
      <title>%s</title>
      <link>%s</link>
      <guid isPermaLink="true">%s</guid>
      <pubDate>%s</pubDate>
      <description>%s</description>
    </item>
`, escapeXML(item.Title), escapeXML(item.Link), escapeXML(item.GUID),
			item.PubDate.Format(time.RFC1123Z), escapeXML(item.Summary))
	}

	b.WriteString(`  </channel>
</rss>`)
	return b.String()
}

func (f *Feed) Atom(ctx context.Context) string {
	home := f.site.Absolute("/guides")
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>%s</title>
  <subtitle>%s</subtitle>
  <link href="%s"/>
  <updated>%s</updated>
  <id>%s</id>
`, escapeXML(f.site.Name), escapeXML(f.site.Description), escapeXML(home), f.now().Format(time.RFC3339), escapeXML(home))

	for _, item := range f.items(ctx) {
		fmt.Fprintf(&b, `  <entry>
    <title>%s</title>
    <link href="%s"/>
    <id>%s</id>
    <updated>%s</updated>
    <summary>%s</summary>
  </entry>
`, escapeXML(item.Title), escapeXML(item.Link), escapeXML(item.GUID),
			item.PubDate.Format(time.RFC3339), escapeXML(item.Summary))
	}

	b.WriteString(`</feed>`)
	return b.String()
}
