// Package fieldmanual serves the editorial side of the site: cocktail recipes,
// bar equipment, ingredients and guides, all sourced from Sanity.
package fieldmanual

import (
	"context"

	"github.com/stillhouse/site/internal/modules/search"
	"github.com/stillhouse/site/internal/modules/seo"
	"github.com/stillhouse/site/internal/pkg/imageloader"
	"github.com/stillhouse/site/internal/pkg/markdown"
	"github.com/stillhouse/site/internal/sanity"
)

// Content is the read side of the Sanity client.
type Content interface {
	Configured() bool
	Cocktails(ctx context.Context, category string) ([]sanity.Cocktail, error)
	EquipmentList(ctx context.Context, category string) ([]sanity.Equipment, error)
	Ingredients(ctx context.Context, category string) ([]sanity.Ingredient, error)
	Guides(ctx context.Context, category string) ([]sanity.Guide, error)
	CocktailBySlug(ctx context.Context, slug string) (*sanity.Cocktail, error)
	EquipmentBySlug(ctx context.Context, slug string) (*sanity.Equipment, error)
	IngredientBySlug(ctx context.Context, slug string) (*sanity.Ingredient, error)
	GuideBySlug(ctx context.Context, slug string) (*sanity.Guide, error)
}

// Kind names a document family and where its pages live.
type Kind struct {
	Name  string
	Label string
	Base  string
}

var (
	KindCocktails   = Kind{Name: "cocktails", Label: "Cocktails", Base: "/field-manual/cocktails"}
	KindEquipment   = Kind{Name: "equipment", Label: "Equipment", Base: "/field-manual/equipment"}
	KindIngredients = Kind{Name: "ingredients", Label: "Ingredients", Base: "/field-manual/ingredients"}
	KindGuides      = Kind{Name: "guides", Label: "Guides", Base: "/guides"}
)

func (k Kind) path(slug string) string {
	return k.Base + "/" + slug
}

// Card is the listing shape shared by every kind.
type Card struct {
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	URL           string             `json:"url"`
	Description   string             `json:"description,omitempty"`
	Category      string             `json:"category,omitempty"`
	CategoryLabel string             `json:"categoryLabel,omitempty"`
	Image         *imageloader.Image `json:"image,omitempty"`
}

// Page is a detail payload. Document holds the raw Sanity record.
type Page struct {
	Document    interface{}        `json:"document"`
	Body        *markdown.Rendered `json:"body,omitempty"`
	Image       *imageloader.Image `json:"image,omitempty"`
	Metadata    seo.Metadata       `json:"metadata"`
	Breadcrumbs []seo.Crumb        `json:"breadcrumbs"`
	JSONLD      []interface{}      `json:"jsonLd"`
}

type Service struct {
	content Content
	site    seo.Site
	images  *imageloader.Loader
}

func NewService(content Content, site seo.Site, images *imageloader.Loader) *Service {
	if images == nil {
		images = imageloader.New("", 0)
	}
	return &Service{content: content, site: site, images: images}
}

func (s *Service) Configured() bool {
	return s.content != nil && s.content.Configured()
}

func (s *Service) card(k Kind, title, slug, desc, category, image string) Card {
	c := Card{
		Title:       title,
		Slug:        slug,
		URL:         k.path(slug),
		Description: desc,
		Category:    category,
		Image:       s.images.Build(image, title, 0, 0),
	}
	if category != "" {
		c.CategoryLabel = search.CategoryLabel(category)
	}
	return c
}

// List returns the cards of one kind, narrowed to category when set.
func (s *Service) List(ctx context.Context, k Kind, category string) ([]Card, error) {
	if !s.Configured() {
		return nil, sanity.ErrNotConfigured
	}
	var cards []Card
	switch k {
	case KindCocktails:
		docs, err := s.content.Cocktails(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			cards = append(cards, s.card(k, d.Name, d.Slug, d.Description, d.Category, d.ImageURL))
		}
	case KindEquipment:
		docs, err := s.content.EquipmentList(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			cards = append(cards, s.card(k, d.Name, d.Slug, d.Description, d.Category, d.ImageURL))
		}
	case KindIngredients:
		docs, err := s.content.Ingredients(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			cards = append(cards, s.card(k, d.Name, d.Slug, d.Description, d.Category, d.ImageURL))
		}
	case KindGuides:
		docs, err := s.content.Guides(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			cards = append(cards, s.card(k, d.Title, d.Slug, d.Excerpt, d.Category, d.ImageURL))
		}
	default:
		return nil, sanity.ErrNotFound
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}

func (s *Service) page(k Kind, slug, title, desc, image, ogType string) Page {
	path := k.path(slug)
	crumbs := seo.Breadcrumbs(path, title)
	return Page{
		Image: s.images.Build(image, title, 0, 0),
		Metadata: s.site.Metadata(seo.PageInput{
			Title:       title,
			Description: desc,
			Path:        path,
			Image:       image,
			OGType:      ogType,
		}),
		Breadcrumbs: crumbs,
		JSONLD:      []interface{}{s.site.BreadcrumbLD(crumbs)},
	}
}

func rendered(body string) *markdown.Rendered {
	if body == "" {
		return nil
	}
	r := markdown.Render(body)
	return &r
}

// Detail resolves one document by slug and wraps it with metadata and JSON-LD.
func (s *Service) Detail(ctx context.Context, k Kind, slug string) (*Page, error) {
	if !s.Configured() {
		return nil, sanity.ErrNotConfigured
	}
	switch k {
	case KindCocktails:
		d, err := s.content.CocktailBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		p := s.page(k, d.Slug, d.Name, d.Description, d.ImageURL, "article")
		p.Document = d
		p.JSONLD = append([]interface{}{s.site.RecipeLD(*d, k.path(d.Slug))}, p.JSONLD...)
		return &p, nil
	case KindEquipment:
		d, err := s.content.EquipmentBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		p := s.page(k, d.Slug, d.Name, d.Description, d.ImageURL, "article")
		p.Document = d
		p.Body = rendered(d.Body)
		return &p, nil
	case KindIngredients:
		d, err := s.content.IngredientBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		p := s.page(k, d.Slug, d.Name, d.Description, d.ImageURL, "article")
		p.Document = d
		p.Body = rendered(d.Body)
		return &p, nil
	case KindGuides:
		d, err := s.content.GuideBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		desc := d.Excerpt
		if desc == "" {
			desc = d.Introduction
		}
		p := s.page(k, d.Slug, d.Title, desc, d.ImageURL, "article")
		p.Document = d
		p.Body = rendered(d.Body)
		var section string
		if d.Category != "" {
			section = search.CategoryLabel(d.Category)
		}
		p.JSONLD = append([]interface{}{s.site.ArticleLD(*d, k.path(d.Slug), section)}, p.JSONLD...)
		return &p, nil
	}
	return nil, sanity.ErrNotFound
}

