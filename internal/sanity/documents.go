package sanity

import (
	"context"
	"errors"
	"fmt"
)

func list[T any](ctx context.Context, c *Client, query, category string) ([]T, error) {
	var out []T
	err := c.Query(ctx, query, Params{"category": category}, &out)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func detail[T any](ctx context.Context, c *Client, query, slug string) (*T, error) {
	var out T
	if err := c.Query(ctx, query, Params{"slug": slug}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func search[T any](ctx context.Context, c *Client, query, pattern string) ([]T, error) {
	var out []T
	err := c.Query(ctx, query, Params{"q": pattern}, &out)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return out, nil
}

// Cocktails lists cocktail recipes; an empty category returns all of them.
func (c *Client) Cocktails(ctx context.Context, category string) ([]Cocktail, error) {
	out, err := list[Cocktail](ctx, c, cocktailListQuery, category)
	if err != nil {
		return nil, fmt.Errorf("list cocktails: %w", err)
	}
	return out, nil
}

func (c *Client) EquipmentList(ctx context.Context, category string) ([]Equipment, error) {
	out, err := list[Equipment](ctx, c, equipmentListQuery, category)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return out, nil
}

func (c *Client) Ingredients(ctx context.Context, category string) ([]Ingredient, error) {
	out, err := list[Ingredient](ctx, c, ingredientListQuery, category)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return out, nil
}

func (c *Client) Guides(ctx context.Context, category string) ([]Guide, error) {
	out, err := list[Guide](ctx, c, guideListQuery, category)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	return out, nil
}

func (c *Client) CocktailBySlug(ctx context.Context, slug string) (*Cocktail, error) {
	return detail[Cocktail](ctx, c, cocktailDetailQuery, slug)
}

func (c *Client) EquipmentBySlug(ctx context.Context, slug string) (*Equipment, error) {
	return detail[Equipment](ctx, c, equipmentDetailQuery, slug)
}

func (c *Client) IngredientBySlug(ctx context.Context, slug string) (*Ingredient, error) {
	return detail[Ingredient](ctx, c, ingredientDetailQuery, slug)
}

func (c *Client) GuideBySlug(ctx context.Context, slug string) (*Guide, error) {
	return detail[Guide](ctx, c, guideDetailQuery, slug)
}

// SearchCocktails matches pattern against name, description and category.
func (c *Client) SearchCocktails(ctx context.Context, pattern string) ([]Cocktail, error) {
	return search[Cocktail](ctx, c, cocktailSearchQuery, pattern)
}

func (c *Client) SearchEquipment(ctx context.Context, pattern string) ([]Equipment, error) {
	return search[Equipment](ctx, c, equipmentSearchQuery, pattern)
}

func (c *Client) SearchIngredients(ctx context.Context, pattern string) ([]Ingredient, error) {
	return search[Ingredient](ctx, c, ingredientSearchQuery, pattern)
}

// SearchGuides matches pattern against title, excerpt, introduction and category.
func (c *Client) SearchGuides(ctx context.Context, pattern string) ([]Guide, error) {
	return search[Guide](ctx, c, guideSearchQuery, pattern)
}
