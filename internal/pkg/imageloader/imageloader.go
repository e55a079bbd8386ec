// Package imageloader builds resized image URLs for the Cloudflare Images
// transform endpoint and the Sanity image CDN.
package imageloader

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultWidths are the srcset breakpoints used by product and article images.
var DefaultWidths = []int{320, 640, 960, 1280, 1920}

type Loader struct {
	zone    string
	quality int
}

// New returns a loader for the given Cloudflare zone. An empty zone disables
// Cloudflare transforms; Sanity URLs are still sized through their own CDN.
func New(zone string, quality int) *Loader {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Loader{zone: strings.TrimSpace(zone), quality: quality}
}

func isSanityCDN(src string) bool {
	return strings.HasPrefix(src, "https://cdn.sanity.io/")
}

// URL returns src resized to width.
func (l *Loader) URL(src string, width int) string {
	if src == "" || width <= 0 {
		return src
	}
	if isSanityCDN(src) {
		u, err := url.Parse(src)
		if err != nil {
			return src
		}
		q := u.Query()
		q.Set("w", strconv.Itoa(width))
		q.Set("q", strconv.Itoa(l.quality))
		q.Set("auto", "format")
		u.RawQuery = q.Encode()
		return u.String()
	}
	if l.zone == "" {
		return src
	}
	return fmt.Sprintf("https://%s/cdn-cgi/image/width=%d,quality=%d,format=auto/%s",
		l.zone, width, l.quality, strings.TrimPrefix(src, "/"))
}

// SrcSet renders a srcset attribute value for the given widths.
func (l *Loader) SrcSet(src string, widths []int) string {
	if src == "" {
		return ""
	}
	if len(widths) == 0 {
		widths = DefaultWidths
	}
	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, fmt.Sprintf("%s %dw", l.URL(src, w), w))
	}
	return strings.Join(parts, ", ")
}

// Image is a sized image ready for a page payload.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	SrcSet string `json:"srcSet,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Build returns an Image with a default-width URL and srcset.
func (l *Loader) Build(src, alt string, width, height int) *Image {
	if src == "" {
		return nil
	}
	return &Image{
		URL:    l.URL(src, 1280),
		Alt:    alt,
		SrcSet: l.SrcSet(src, nil),
		Width:  width,
		Height: height,
	}
}
