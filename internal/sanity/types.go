package sanity

import "time"

type CocktailIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
}

type Cocktail struct {
	ID          string               `json:"_id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description,omitempty"`
	Category    string               `json:"category,omitempty"`
	ImageURL    string               `json:"imageUrl,omitempty"`
	Glassware   string               `json:"glassware,omitempty"`
	Garnish     string               `json:"garnish,omitempty"`
	PrepMinutes int                  `json:"prepMinutes,omitempty"`
	Ingredients []CocktailIngredient `json:"ingredients,omitempty"`
	Method      []string             `json:"method,omitempty"`
	CreatedAt   time.Time            `json:"_createdAt"`
	UpdatedAt   time.Time            `json:"_updatedAt"`
}

type Equipment struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Body        string    `json:"body,omitempty"`
	CreatedAt   time.Time `json:"_createdAt"`
	UpdatedAt   time.Time `json:"_updatedAt"`
}

type Ingredient struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Body        string    `json:"body,omitempty"`
	CreatedAt   time.Time `json:"_createdAt"`
	UpdatedAt   time.Time `json:"_updatedAt"`
}

type Guide struct {
	ID           string     `json:"_id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt,omitempty"`
	Introduction string     `json:"introduction,omitempty"`
	Category     string     `json:"category,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	Author       string     `json:"author,omitempty"`
	Body         string     `json:"body,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt    time.Time  `json:"_updatedAt"`
}
