package seo

import (
	"fmt"
	"time"

	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
)

const schemaContext = "https://schema.org"

type Organization struct {
	Context     string   `json:"@context,omitempty"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

type EntryPoint struct {
	Type        string `json:"@type"`
	URLTemplate string `json:"urlTemplate"`
}

type SearchAction struct {
	Type       string     `json:"@type"`
	Target     EntryPoint `json:"target"`
	QueryInput string     `json:"query-input"`
}

type WebSite struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url"`
	SKU           string `json:"sku,omitempty"`
	Name          string `json:"name,omitempty"`
}

type Product struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       []string `json:"image,omitempty"`
	URL         string   `json:"url"`
	SKU         string   `json:"sku,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       Brand    `json:"brand"`
	Offers      []Offer  `json:"offers,omitempty"`
}

type HowToStep struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type Recipe struct {
	Context            string        `json:"@context"`
	Type               string        `json:"@type"`
	Name               string        `json:"name"`
	Description        string        `json:"description,omitempty"`
	Image              []string      `json:"image,omitempty"`
	URL                string        `json:"url"`
	RecipeCategory     string        `json:"recipeCategory,omitempty"`
	RecipeCuisine      string        `json:"recipeCuisine,omitempty"`
	RecipeYield        string        `json:"recipeYield,omitempty"`
	PrepTime           string        `json:"prepTime,omitempty"`
	RecipeIngredient   []string      `json:"recipeIngredient,omitempty"`
	RecipeInstructions []HowToStep   `json:"recipeInstructions,omitempty"`
	DatePublished      string        `json:"datePublished,omitempty"`
	Author             *Organization `json:"author,omitempty"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Article struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            []string      `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	Author           interface{}   `json:"author,omitempty"`
	Publisher        *Organization `json:"publisher,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage"`
	ArticleSection   string        `json:"articleSection,omitempty"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

func (s Site) organization() *Organization {
	org := &Organization{
		Type: "Organization",
		Name: s.Name,
		URL:  s.Absolute("/"),
	}
	if s.Logo != "" {
		org.Logo = s.Absolute(s.Logo)
	}
	return org
}

// OrganizationLD is the brand's Organization markup for the home page.
func (s Site) OrganizationLD() Organization {
	org := *s.organization()
	org.Context = schemaContext
	org.Description = s.Description
	org.SameAs = s.SameAs
	return org
}

// WebSiteLD declares the site search so engines can offer a sitelinks search box.
func (s Site) WebSiteLD() WebSite {
	return WebSite{
		Context: schemaContext,
		Type:    "WebSite",
		Name:    s.Name,
		URL:     s.Absolute("/"),
		PotentialAction: &SearchAction{
			Type: "SearchAction",
			Target: EntryPoint{
				Type:        "EntryPoint",
				URLTemplate: s.Absolute("/search") + "?q={search_term_string}",
			},
			QueryInput: "required name=search_term_string",
		},
	}
}

func availability(inStock bool) string {
	if inStock {
		return "https://schema.org/InStock"
	}
	return "https://schema.org/OutOfStock"
}

// ProductLD emits one Offer per variant, falling back to the price range when
// the product was fetched without variants.
func (s Site) ProductLD(p shopify.Product) Product {
	url := s.Absolute(p.URL())
	brand := p.Vendor
	if brand == "" {
		brand = s.Name
	}
	ld := Product{
		Context:     schemaContext,
		Type:        "Product",
		Name:        p.Title,
		Description: p.Description,
		URL:         url,
		Category:    p.ProductType,
		Brand:       Brand{Type: "Brand", Name: brand},
	}
	if p.FeaturedImage != nil {
		ld.Image = append(ld.Image, p.FeaturedImage.URL)
	}
	for _, img := range p.Images {
		if p.FeaturedImage == nil || img.URL != p.FeaturedImage.URL {
			ld.Image = append(ld.Image, img.URL)
		}
	}
	for _, v := range p.Variants {
		if ld.SKU == "" {
			ld.SKU = v.SKU
		}
		ld.Offers = append(ld.Offers, Offer{
			Type:          "Offer",
			Name:          v.Title,
			Price:         v.Price.Amount.StringFixed(2),
			PriceCurrency: v.Price.CurrencyCode,
			Availability:  availability(v.AvailableForSale),
			URL:           url,
			SKU:           v.SKU,
		})
	}
	if len(ld.Offers) == 0 && p.PriceRange.MinVariantPrice.CurrencyCode != "" {
		ld.Offers = []Offer{{
			Type:          "Offer",
			Price:         p.PriceRange.MinVariantPrice.Amount.StringFixed(2),
			PriceCurrency: p.PriceRange.MinVariantPrice.CurrencyCode,
			Availability:  availability(p.AvailableForSale),
			URL:           url,
		}}
	}
	return ld
}

// RecipeLD describes a cocktail page at path.
func (s Site) RecipeLD(c sanity.Cocktail, path string) Recipe {
	ld := Recipe{
		Context:        schemaContext,
		Type:           "Recipe",
		Name:           c.Name,
		Description:    c.Description,
		URL:            s.Absolute(path),
		RecipeCategory: "Cocktail",
		RecipeYield:    "1 drink",
		Author:         s.organization(),
	}
	if c.ImageURL != "" {
		ld.Image = []string{c.ImageURL}
	}
	if c.PrepMinutes > 0 {
		ld.PrepTime = fmt.Sprintf("PT%dM", c.PrepMinutes)
	}
	for _, ing := range c.Ingredients {
		line := ing.Name
		if ing.Amount != "" {
			line = ing.Amount + " " + ing.Name
		}
		ld.RecipeIngredient = append(ld.RecipeIngredient, line)
	}
	for _, step := range c.Method {
		ld.RecipeInstructions = append(ld.RecipeInstructions, HowToStep{Type: "HowToStep", Text: step})
	}
	if !c.CreatedAt.IsZero() {
		ld.DatePublished = c.CreatedAt.Format(time.DateOnly)
	}
	return ld
}

// ArticleLD describes a guide page at path.
func (s Site) ArticleLD(g sanity.Guide, path, section string) Article {
	ld := Article{
		Context:          schemaContext,
		Type:             "Article",
		Headline:         g.Title,
		Description:      g.Excerpt,
		Publisher:        s.organization(),
		MainEntityOfPage: s.Absolute(path),
		ArticleSection:   section,
	}
	if g.ImageURL != "" {
		ld.Image = []string{g.ImageURL}
	}
	if g.PublishedAt != nil {
		ld.DatePublished = g.PublishedAt.Format(time.RFC3339)
	}
	if !g.UpdatedAt.IsZero() {
		ld.DateModified = g.UpdatedAt.Format(time.RFC3339)
	}
	if g.Author != "" {
		ld.Author = Person{Type: "Person", Name: g.Author}
	} else {
		ld.Author = s.organization()
	}
	return ld
}

// BreadcrumbLD renders crumbs as a BreadcrumbList.
func (s Site) BreadcrumbLD(crumbs []Crumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     s.Absolute(c.Path),
		})
	}
	return BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}
