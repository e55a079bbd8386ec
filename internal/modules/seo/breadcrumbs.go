package seo

import (
	"strings"

	"github.com/stillhouse/site/internal/modules/search"
)

// Crumb is one breadcrumb step.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Breadcrumbs derives crumbs from a URL path, starting at Home. Segment names
// use the same hyphen-to-label transform as guide categories; title replaces
// the final crumb's derived name when set.
func Breadcrumbs(path, title string) []Crumb {
	crumbs := []Crumb{{Name: "Home", Path: "/"}}
	path = strings.Trim(strings.SplitN(path, "?", 2)[0], "/")
	if path == "" {
		return crumbs
	}
	segments := strings.Split(path, "/")
	acc := ""
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		acc += "/" + seg
		name := search.CategoryLabel(seg)
		if i == len(segments)-1 && title != "" {
			name = title
		}
		crumbs = append(crumbs, Crumb{Name: name, Path: acc})
	}
	return crumbs
}
