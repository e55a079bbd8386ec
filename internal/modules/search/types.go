package search

// ItemType tags which source produced a search result.
type ItemType string

const (
	TypePage       ItemType = "page"
	TypeProduct    ItemType = "product"
	TypeRecipe     ItemType = "recipe"
	TypeEquipment  ItemType = "equipment"
	TypeIngredient ItemType = "ingredient"
	TypeGuide      ItemType = "guide"
)

// MaxResults caps the assembled result list.
const MaxResults = 12

// Item is a single search result. URL is unique per item.
type Item struct {
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	// Keywords feed static page matching only and are never serialized.
	Keywords string `json:"-"`
}

// Source names, in assembly order. They also appear in the degraded header.
const (
	SourcePages       = "pages"
	SourceProducts    = "products"
	SourceRecipes     = "recipes"
	SourceEquipment   = "equipment"
	SourceIngredients = "ingredients"
	SourceGuides      = "guides"
)

// Result is the assembled outcome of one search.
type Result struct {
	Items []Item
	// Degraded lists sources that failed and contributed nothing.
	Degraded []string
}

type searchResponse struct {
	Results []Item `json:"results"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Results []Item `json:"results"`
}
