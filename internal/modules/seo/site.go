// Package seo builds page metadata, JSON-LD structured data, breadcrumbs and
// the sitemap/robots surfaces.
package seo

import "strings"

// Site describes the brand for metadata and Organization markup.
type Site struct {
	Name        string
	URL         string
	Description string
	Logo        string
	SameAs      []string
}

// Absolute joins path onto the site URL.
func (s Site) Absolute(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(s.URL, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
