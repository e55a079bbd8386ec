package seo

// OpenGraph holds og:* properties.
type OpenGraph struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"siteName"`
}

type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Metadata is everything a page head needs.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Canonical   string    `json:"canonical"`
	Robots      string    `json:"robots,omitempty"`
	OpenGraph   OpenGraph `json:"openGraph"`
	Twitter     Twitter   `json:"twitter"`
}

// PageInput describes one page for Metadata.
type PageInput struct {
	Title       string
	Description string
	Path        string
	Image       string
	// OGType defaults to "website".
	OGType  string
	NoIndex bool
}

const maxDescription = 160

// Metadata builds head metadata. Titles get the site name suffix unless they
// already are the site name; descriptions are cut to 160 characters.
func (s Site) Metadata(in PageInput) Metadata {
	title := in.Title
	switch {
	case title == "":
		title = s.Name
	case title != s.Name:
		title = title + " | " + s.Name
	}
	desc := in.Description
	if desc == "" {
		desc = s.Description
	}
	desc = clip(desc, maxDescription)

	ogType := in.OGType
	if ogType == "" {
		ogType = "website"
	}
	image := ""
	if in.Image != "" {
		image = s.Absolute(in.Image)
	} else if s.Logo != "" {
		image = s.Absolute(s.Logo)
	}
	canonical := s.Absolute(in.Path)

	md := Metadata{
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Type:        ogType,
			Title:       title,
			Description: desc,
			URL:         canonical,
			Image:       image,
			SiteName:    s.Name,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: desc,
			Image:       image,
		},
	}
	if in.NoIndex {
		md.Robots = "noindex, nofollow"
	}
	return md
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
