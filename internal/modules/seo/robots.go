package seo

import "strings"

// Robots renders robots.txt: everything but the API is crawlable.
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.Absolute("/sitemap.xml") + "\n")
	return b.String()
}
