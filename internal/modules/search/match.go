package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
)

const productDescriptionLimit = 100

// matchesAll reports whether every token occurs as a substring of haystack.
// haystack must already be lowercase.
func matchesAll(haystack string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func haystack(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

// MatchPages filters pages down to those containing every token, preserving order.
func MatchPages(tokens []string, pages []Item) []Item {
	out := make([]Item, 0)
	for _, p := range pages {
		if matchesAll(haystack(p.Title, p.Description, p.Category, p.Keywords), tokens) {
			out = append(out, p)
		}
	}
	return out
}

// MatchProducts filters the catalog with the same AND rule as pages and maps hits to items.
func MatchProducts(tokens []string, products []shopify.Product) []Item {
	out := make([]Item, 0)
	for _, p := range products {
		if !matchesAll(haystack(p.Title, p.Description, strings.Join(p.Tags, " ")), tokens) {
			continue
		}
		out = append(out, productItem(p))
	}
	return out
}

func productItem(p shopify.Product) Item {
	item := Item{
		Type:        TypeProduct,
		Title:       p.Title,
		Description: truncate(p.Description, productDescriptionLimit),
		URL:         p.URL(),
		Category:    p.ProductType,
	}
	if p.FeaturedImage != nil {
		item.Image = p.FeaturedImage.URL
	}
	return item
}

// truncate cuts s to limit runes and appends "..." when anything was removed.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// CategoryLabel turns a hyphenated category slug into a display label by
// upper-casing the first letter of each segment: "uk-craft-spirits" becomes
// "Uk Craft Spirits". The rest of each segment is left as is.
func CategoryLabel(slug string) string {
	if slug == "" {
		return ""
	}
	segments := strings.Split(slug, "-")
	for i, seg := range segments {
		r, size := utf8.DecodeRuneInString(seg)
		if size == 0 {
			continue
		}
		segments[i] = string(unicode.ToUpper(r)) + seg[size:]
	}
	return strings.Join(segments, " ")
}

// Recipe results link under /cocktails while the field manual serves them
// under /field-manual/cocktails; see DESIGN.md before changing either.
func recipeItems(docs []sanity.Cocktail) []Item {
	out := make([]Item, 0, len(docs))
	for _, d := range docs {
		if d.Slug == "" {
			continue
		}
		out = append(out, Item{
			Type:        TypeRecipe,
			Title:       d.Name,
			Description: d.Description,
			URL:         "/cocktails/" + d.Slug,
			Image:       d.ImageURL,
			Category:    d.Category,
		})
	}
	return out
}

func equipmentItems(docs []sanity.Equipment) []Item {
	out := make([]Item, 0, len(docs))
	for _, d := range docs {
		if d.Slug == "" {
			continue
		}
		out = append(out, Item{
			Type:        TypeEquipment,
			Title:       d.Name,
			Description: d.Description,
			URL:         "/field-manual/equipment/" + d.Slug,
			Image:       d.ImageURL,
			Category:    d.Category,
		})
	}
	return out
}

func ingredientItems(docs []sanity.Ingredient) []Item {
	out := make([]Item, 0, len(docs))
	for _, d := range docs {
		if d.Slug == "" {
			continue
		}
		out = append(out, Item{
			Type:        TypeIngredient,
			Title:       d.Name,
			Description: d.Description,
			URL:         "/field-manual/ingredients/" + d.Slug,
			Image:       d.ImageURL,
			Category:    d.Category,
		})
	}
	return out
}

func guideItems(docs []sanity.Guide) []Item {
	out := make([]Item, 0, len(docs))
	for _, d := range docs {
		if d.Slug == "" {
			continue
		}
		out = append(out, Item{
			Type:        TypeGuide,
			Title:       d.Title,
			Description: d.Excerpt,
			URL:         "/guides/" + d.Slug,
			Image:       d.ImageURL,
			Category:    CategoryLabel(d.Category),
		})
	}
	return out
}
