package search

import (
	"context"
	"fmt"
	"time"

	"github.com/stillhouse/site/internal/sanity"
	"github.com/stillhouse/site/internal/shopify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProductSource supplies the full product catalog.
type ProductSource interface {
	Configured() bool
	Products(ctx context.Context) ([]shopify.Product, error)
}

// ContentSource runs the per-type content searches server-side.
type ContentSource interface {
	Configured() bool
	SearchCocktails(ctx context.Context, pattern string) ([]sanity.Cocktail, error)
	SearchEquipment(ctx context.Context, pattern string) ([]sanity.Equipment, error)
	SearchIngredients(ctx context.Context, pattern string) ([]sanity.Ingredient, error)
	SearchGuides(ctx context.Context, pattern string) ([]sanity.Guide, error)
}

const defaultSourceTimeout = 5 * time.Second

// Service aggregates the static page index, the commerce catalog and the
// content backend into one capped result list.
type Service struct {
	pages         []Item
	products      ProductSource
	content       ContentSource
	sourceTimeout time.Duration
	logger        *zap.Logger
}

// ServiceOption configures a search Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the search service.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l.Named("SearchService")
		}
	}
}

// WithSourceTimeout bounds each remote source call.
func WithSourceTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.sourceTimeout = d
		}
	}
}

// WithPages replaces the static page index.
func WithPages(pages []Item) ServiceOption {
	return func(s *Service) {
		s.pages = pages
	}
}

// NewService builds a search service. Either source may be nil.
func NewService(products ProductSource, content ContentSource, opts ...ServiceOption) *Service {
	s := &Service{
		pages:         staticPages,
		products:      products,
		content:       content,
		sourceTimeout: defaultSourceTimeout,
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// remoteSource is one backend query; fn returns the mapped items for the query.
type remoteSource struct {
	name string
	fn   func(ctx context.Context, q Query) ([]Item, error)
}

func (s *Service) remoteSources() []remoteSource {
	var sources []remoteSource
	if s.products != nil && s.products.Configured() {
		sources = append(sources, remoteSource{SourceProducts, func(ctx context.Context, q Query) ([]Item, error) {
			catalog, err := s.products.Products(ctx)
			if err != nil {
				return nil, err
			}
			return MatchProducts(q.Tokens, catalog), nil
		}})
	}
	if s.content != nil && s.content.Configured() {
		sources = append(sources,
			remoteSource{SourceRecipes, func(ctx context.Context, q Query) ([]Item, error) {
				docs, err := s.content.SearchCocktails(ctx, q.ContentPattern())
				return recipeItems(docs), err
			}},
			remoteSource{SourceEquipment, func(ctx context.Context, q Query) ([]Item, error) {
				docs, err := s.content.SearchEquipment(ctx, q.ContentPattern())
				return equipmentItems(docs), err
			}},
			remoteSource{SourceIngredients, func(ctx context.Context, q Query) ([]Item, error) {
				docs, err := s.content.SearchIngredients(ctx, q.ContentPattern())
				return ingredientItems(docs), err
			}},
			remoteSource{SourceGuides, func(ctx context.Context, q Query) ([]Item, error) {
				docs, err := s.content.SearchGuides(ctx, q.ContentPattern())
				return guideItems(docs), err
			}},
		)
	}
	return sources
}

// Search runs raw against every source and assembles at most MaxResults items.
// Static pages come first, then products, recipes, equipment, ingredients and
// guides. A failing source is logged, reported in Result.Degraded and
// contributes nothing; it never fails the search.
func (s *Service) Search(ctx context.Context, raw string) Result {
	q := Normalize(raw)
	if q.Empty() {
		return Result{Items: []Item{}}
	}

	pages := MatchPages(q.Tokens, s.pages)
	sources := s.remoteSources()
	found := make([][]Item, len(sources))
	failed := make([]bool, len(sources))

	// Sources run concurrently but each writes only its own slot, so the
	// assembly order below stays fixed.
	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
			defer cancel()
			start := time.Now()
			items, err := s.runSource(sctx, src, q)
			if err != nil {
				failed[i] = true
				s.logger.Warn("search source failed",
					zap.String("source", src.name),
					zap.String("query", q.Normalized),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err),
				)
				return nil
			}
			found[i] = items
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Items: make([]Item, 0, MaxResults)}
	result.Items = appendCapped(result.Items, pages)
	for i, src := range sources {
		if failed[i] {
			result.Degraded = append(result.Degraded, src.name)
			continue
		}
		result.Items = appendCapped(result.Items, found[i])
	}
	s.logger.Debug("search served",
		zap.String("query", q.Normalized),
		zap.Int("results", len(result.Items)),
		zap.Strings("degraded", result.Degraded),
	)
	return result
}

// runSource converts a panic inside a source into an error so one broken
// mapping cannot take the process down from a worker goroutine.
func (s *Service) runSource(ctx context.Context, src remoteSource, q Query) (items []Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source %s panicked: %v", src.name, r)
		}
	}()
	return src.fn(ctx, q)
}

func appendCapped(dst, src []Item) []Item {
	room := MaxResults - len(dst)
	if room <= 0 {
		return dst
	}
	if len(src) > room {
		src = src[:room]
	}
	return append(dst, src...)
}
