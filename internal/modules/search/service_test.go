package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	configured bool
	products   []shopify.Product
	err        error
	calls      atomic.Int32
}

func (f *fakeProducts) Configured() bool { return f.configured }

func (f *fakeProducts) Products(ctx context.Context) ([]shopify.Product, error) {
	f.calls.Add(1)
	return f.products, f.err
}

type fakeContent struct {
	configured  bool
	cocktails   []sanity.Cocktail
	equipment   []sanity.Equipment
	ingredients []sanity.Ingredient
	guides      []sanity.Guide
	errs        map[string]error
	delay       time.Duration

	mu       sync.Mutex
	patterns []string
	calls    atomic.Int32
}

func (f *fakeContent) Configured() bool { return f.configured }

func (f *fakeContent) record(ctx context.Context, source, pattern string) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.patterns = append(f.patterns, pattern)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.errs[source]
}

func (f *fakeContent) SearchCocktails(ctx context.Context, pattern string) ([]sanity.Cocktail, error) {
	if err := f.record(ctx, SourceRecipes, pattern); err != nil {
		return nil, err
	}
	return f.cocktails, nil
}

func (f *fakeContent) SearchEquipment(ctx context.Context, pattern string) ([]sanity.Equipment, error) {
	if err := f.record(ctx, SourceEquipment, pattern); err != nil {
		return nil, err
	}
	return f.equipment, nil
}

func (f *fakeContent) SearchIngredients(ctx context.Context, pattern string) ([]sanity.Ingredient, error) {
	if err := f.record(ctx, SourceIngredients, pattern); err != nil {
		return nil, err
	}
	return f.ingredients, nil
}

func (f *fakeContent) SearchGuides(ctx context.Context, pattern string) ([]sanity.Guide, error) {
	if err := f.record(ctx, SourceGuides, pattern); err != nil {
		return nil, err
	}
	return f.guides, nil
}

func (f *fakeContent) seenPatterns() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.patterns...)
}

func TestSearch_EmptyQueryMakesNoCalls(t *testing.T) {
	products := &fakeProducts{configured: true}
	content := &fakeContent{configured: true}
	svc := NewService(products, content)

	for _, raw := range []string{"", "   ", "\t\n"} {
		res := svc.Search(context.Background(), raw)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.Empty(t, res.Degraded)
	}
	assert.Zero(t, products.calls.Load())
	assert.Zero(t, content.calls.Load())
}

func TestSearch_ResultCap(t *testing.T) {
	var catalog []shopify.Product
	for i := 0; i < 20; i++ {
		catalog = append(catalog, shopify.Product{Handle: fmt.Sprintf("rum-%d", i), Title: fmt.Sprintf("Rum %d", i)})
	}
	var guides []sanity.Guide
	for i := 0; i < 10; i++ {
		guides = append(guides, sanity.Guide{Title: fmt.Sprintf("Guide %d", i), Slug: fmt.Sprintf("g-%d", i)})
	}
	svc := NewService(&fakeProducts{configured: true, products: catalog}, &fakeContent{configured: true, guides: guides})

	res := svc.Search(context.Background(), "rum")
	assert.Len(t, res.Items, MaxResults)
	for _, it := range res.Items {
		assert.NotEqual(t, TypeGuide, it.Type, "guides sit behind products and must be cut")
	}
}

func TestSearch_FixedSourceOrder(t *testing.T) {
	pages := []Item{{Type: TypePage, Title: "Rum Page", URL: "/rum"}}
	products := &fakeProducts{configured: true, products: []shopify.Product{{Handle: "navy", Title: "Navy Rum"}}}
	content := &fakeContent{
		configured:  true,
		cocktails:   []sanity.Cocktail{{Name: "Rum Punch", Slug: "punch"}},
		equipment:   []sanity.Equipment{{Name: "Rum Still", Slug: "still"}},
		ingredients: []sanity.Ingredient{{Name: "Rum Syrup", Slug: "syrup"}},
		guides:      []sanity.Guide{{Title: "Rum 101", Slug: "rum-101"}},
		// Later sources answer first; order must not depend on timing.
		delay: 5 * time.Millisecond,
	}
	svc := NewService(products, content, WithPages(pages))

	res := svc.Search(context.Background(), "rum")
	require.Len(t, res.Items, 6)
	var types []ItemType
	for _, it := range res.Items {
		types = append(types, it.Type)
	}
	assert.Equal(t, []ItemType{TypePage, TypeProduct, TypeRecipe, TypeEquipment, TypeIngredient, TypeGuide}, types)
}

func TestSearch_CommerceFailureIsNonFatal(t *testing.T) {
	products := &fakeProducts{configured: true, err: errors.New("shopify down")}
	content := &fakeContent{configured: true, guides: []sanity.Guide{{Title: "Barrel Ageing", Slug: "barrel-ageing"}}}
	svc := NewService(products, content, WithPages(nil))

	res := svc.Search(context.Background(), "zzqx")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "/guides/barrel-ageing", res.Items[0].URL)
	assert.Equal(t, []string{SourceProducts}, res.Degraded)
	assert.EqualValues(t, 1, products.calls.Load())
}

func TestSearch_ContentFailuresAreIndependent(t *testing.T) {
	content := &fakeContent{
		configured:  true,
		cocktails:   []sanity.Cocktail{{Name: "Daiquiri", Slug: "daiquiri"}},
		ingredients: []sanity.Ingredient{{Name: "Lime", Slug: "lime"}},
		errs: map[string]error{
			SourceEquipment: errors.New("timeout"),
			SourceGuides:    errors.New("bad gateway"),
		},
	}
	svc := NewService(nil, content, WithPages(nil))

	res := svc.Search(context.Background(), "lime")
	assert.Equal(t, []string{"Daiquiri", "Lime"}, titles(res.Items))
	assert.Equal(t, []string{SourceEquipment, SourceGuides}, res.Degraded)
}

func TestSearch_UnconfiguredSourcesAreSkipped(t *testing.T) {
	products := &fakeProducts{configured: false}
	content := &fakeContent{configured: false}
	svc := NewService(products, content)

	res := svc.Search(context.Background(), "cookie policy")
	assert.Contains(t, titles(res.Items), "Cookie Policy")
	assert.Empty(t, res.Degraded)
	assert.Zero(t, products.calls.Load())
	assert.Zero(t, content.calls.Load())
}

func TestSearch_ContentPatterns(t *testing.T) {
	content := &fakeContent{configured: true}
	svc := NewService(nil, content)

	svc.Search(context.Background(), "Rum")
	patterns := content.seenPatterns()
	require.Len(t, patterns, 4)
	for _, p := range patterns {
		assert.Equal(t, "*rum*", p)
	}

	content2 := &fakeContent{configured: true}
	NewService(nil, content2).Search(context.Background(), "spiced rum")
	for _, p := range content2.seenPatterns() {
		assert.Equal(t, "spiced rum", p)
	}
}

func TestSearch_SourceTimeout(t *testing.T) {
	content := &fakeContent{
		configured: true,
		guides:     []sanity.Guide{{Title: "Slow", Slug: "slow"}},
		delay:      time.Second,
	}
	svc := NewService(nil, content, WithPages(nil), WithSourceTimeout(20*time.Millisecond))

	start := time.Now()
	res := svc.Search(context.Background(), "slow")
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Empty(t, res.Items)
	assert.Len(t, res.Degraded, 4)
}
