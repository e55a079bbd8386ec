// Package shop serves the storefront: product and collection payloads, the
// cart widget backend and the Shopify product webhook.
package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stillhouse/site/internal/modules/seo"
	"github.com/stillhouse/site/internal/pkg/imageloader"
	"github.com/stillhouse/site/internal/shopify"
	"go.uber.org/zap"
)

// Commerce is the slice of the Storefront client the shop needs.
type Commerce interface {
	Configured() bool
	Product(ctx context.Context, handle string) (*shopify.Product, error)
	Collections(ctx context.Context) ([]shopify.Collection, error)
	Collection(ctx context.Context, handle string) (*shopify.Collection, error)
	Cart(ctx context.Context, cartID string) (*shopify.Cart, error)
	CreateCart(ctx context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error)
	AddCartLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error)
	UpdateCartLines(ctx context.Context, cartID string, lines []shopify.CartLineUpdate) (*shopify.Cart, error)
	RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error)
}

// Catalog is the cached full product list.
type Catalog interface {
	Configured() bool
	Products(ctx context.Context) ([]shopify.Product, error)
	Invalidate(ctx context.Context) error
}

type ProductCard struct {
	Handle      string             `json:"handle"`
	Title       string             `json:"title"`
	URL         string             `json:"url"`
	ProductType string             `json:"productType,omitempty"`
	Price       string             `json:"price"`
	Amount      decimal.Decimal    `json:"amount"`
	Currency    string             `json:"currency"`
	CompareAt   string             `json:"compareAt,omitempty"`
	Available   bool               `json:"available"`
	Image       *imageloader.Image `json:"image,omitempty"`
}

type ProductPage struct {
	Product     shopify.Product      `json:"product"`
	Card        ProductCard          `json:"card"`
	Images      []*imageloader.Image `json:"images"`
	Metadata    seo.Metadata         `json:"metadata"`
	Breadcrumbs []seo.Crumb          `json:"breadcrumbs"`
	JSONLD      []interface{}        `json:"jsonLd"`
}

type CollectionCard struct {
	Handle      string             `json:"handle"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	URL         string             `json:"url"`
	Image       *imageloader.Image `json:"image,omitempty"`
}

type CollectionPage struct {
	Collection  CollectionCard `json:"collection"`
	Products    []ProductCard  `json:"products"`
	Metadata    seo.Metadata   `json:"metadata"`
	Breadcrumbs []seo.Crumb    `json:"breadcrumbs"`
	JSONLD      []interface{}  `json:"jsonLd"`
}

type Service struct {
	commerce Commerce
	catalog  Catalog
	site     seo.Site
	images   *imageloader.Loader
	logger   *zap.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(commerce Commerce, catalog Catalog, site seo.Site, images *imageloader.Loader, opts ...ServiceOption) *Service {
	s := &Service{
		commerce: commerce,
		catalog:  catalog,
		site:     site,
		images:   images,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.images == nil {
		s.images = imageloader.New("", 0)
	}
	s.logger = s.logger.Named("ShopService")
	return s
}

func (s *Service) Configured() bool {
	return s.commerce != nil && s.commerce.Configured()
}

func (s *Service) card(p shopify.Product) ProductCard {
	price := p.PriceRange.MinVariantPrice
	card := ProductCard{
		Handle:      p.Handle,
		Title:       p.Title,
		URL:         p.URL(),
		ProductType: p.ProductType,
		Price:       price.String(),
		Amount:      price.Amount,
		Currency:    price.CurrencyCode,
		Available:   p.AvailableForSale,
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		if v.CompareAtPrice != nil && v.CompareAtPrice.Amount.GreaterThan(v.Price.Amount) {
			card.CompareAt = v.CompareAtPrice.String()
		}
	}
	if img := p.FeaturedImage; img != nil {
		card.Image = s.images.Build(img.URL, altOr(img.AltText, p.Title), img.Width, img.Height)
	} else if len(p.Images) > 0 {
		img := p.Images[0]
		card.Image = s.images.Build(img.URL, altOr(img.AltText, p.Title), img.Width, img.Height)
	}
	return card
}

func altOr(alt, fallback string) string {
	if alt != "" {
		return alt
	}
	return fallback
}

// Products lists the cached catalog as cards, optionally narrowed to one
// product type (case-insensitive).
func (s *Service) Products(ctx context.Context, productType string) ([]ProductCard, error) {
	if s.catalog == nil || !s.catalog.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		if productType != "" && !strings.EqualFold(p.ProductType, productType) {
			continue
		}
		cards = append(cards, s.card(p))
	}
	return cards, nil
}

func (s *Service) Product(ctx context.Context, handle string) (*ProductPage, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	p, err := s.commerce.Product(ctx, handle)
	if err != nil {
		return nil, err
	}

	images := make([]*imageloader.Image, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, s.images.Build(img.URL, altOr(img.AltText, p.Title), img.Width, img.Height))
	}

	title := altOr(p.SEO.Title, p.Title)
	var ogImage string
	if p.FeaturedImage != nil {
		ogImage = p.FeaturedImage.URL
	}
	crumbs := append(seo.Breadcrumbs("/shop", ""), seo.Crumb{Name: p.Title, Path: p.URL()})

	return &ProductPage{
		Product: *p,
		Card:    s.card(*p),
		Images:  images,
		Metadata: s.site.Metadata(seo.PageInput{
			Title:       title,
			Description: altOr(p.SEO.Description, p.Description),
			Path:        p.URL(),
			Image:       ogImage,
			OGType:      "product",
		}),
		Breadcrumbs: crumbs,
		JSONLD:      []interface{}{s.site.ProductLD(*p), s.site.BreadcrumbLD(crumbs)},
	}, nil
}

func collectionURL(handle string) string {
	return "/shop/collections/" + handle
}

func (s *Service) collectionCard(col shopify.Collection) CollectionCard {
	card := CollectionCard{
		Handle:      col.Handle,
		Title:       col.Title,
		Description: col.Description,
		URL:         collectionURL(col.Handle),
	}
	if col.Image != nil {
		card.Image = s.images.Build(col.Image.URL, altOr(col.Image.AltText, col.Title), col.Image.Width, col.Image.Height)
	}
	return card
}

func (s *Service) Collections(ctx context.Context) ([]CollectionCard, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	cols, err := s.commerce.Collections(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]CollectionCard, 0, len(cols))
	for _, col := range cols {
		cards = append(cards, s.collectionCard(col))
	}
	return cards, nil
}

func (s *Service) Collection(ctx context.Context, handle string) (*CollectionPage, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	col, err := s.commerce.Collection(ctx, handle)
	if err != nil {
		return nil, err
	}
	products := make([]ProductCard, 0, len(col.Products))
	for _, p := range col.Products {
		products = append(products, s.card(p))
	}
	path := collectionURL(col.Handle)
	crumbs := append(seo.Breadcrumbs("/shop", ""), seo.Crumb{Name: col.Title, Path: path})
	page := &CollectionPage{
		Collection: s.collectionCard(*col),
		Products:   products,
		Metadata: s.site.Metadata(seo.PageInput{
			Title:       col.Title,
			Description: col.Description,
			Path:        path,
		}),
		Breadcrumbs: crumbs,
		JSONLD:      []interface{}{s.site.BreadcrumbLD(crumbs)},
	}
	if col.Image != nil {
		page.Metadata = s.site.Metadata(seo.PageInput{Title: col.Title, Description: col.Description, Path: path, Image: col.Image.URL})
	}
	return page, nil
}

// emptyCart is what the widget sees before anything has been added.
func emptyCart() *shopify.Cart {
	return &shopify.Cart{Lines: []shopify.CartLine{}}
}

// Cart returns the cart for id. A missing or expired cart reads as empty and
// found reports which it was.
func (s *Service) Cart(ctx context.Context, cartID string) (cart *shopify.Cart, found bool, err error) {
	if !s.Configured() {
		return nil, false, shopify.ErrNotConfigured
	}
	if cartID == "" {
		return emptyCart(), false, nil
	}
	cart, err = s.commerce.Cart(ctx, cartID)
	if errors.Is(err, shopify.ErrNotFound) {
		return emptyCart(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// AddLines adds to the cart, creating a fresh one when cartID is empty or
// Shopify no longer knows it.
func (s *Service) AddLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	if cartID != "" {
		cart, err := s.commerce.AddCartLines(ctx, cartID, lines)
		if !errors.Is(err, shopify.ErrNotFound) {
			return cart, err
		}
		s.logger.Info("cart expired, creating a new one", zap.String("cart", cartID))
	}
	return s.commerce.CreateCart(ctx, lines)
}

func (s *Service) UpdateLines(ctx context.Context, cartID string, lines []shopify.CartLineUpdate) (*shopify.Cart, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	if cartID == "" {
		return nil, shopify.ErrNotFound
	}
	return s.commerce.UpdateCartLines(ctx, cartID, lines)
}

func (s *Service) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*shopify.Cart, error) {
	if !s.Configured() {
		return nil, shopify.ErrNotConfigured
	}
	if cartID == "" {
		return nil, shopify.ErrNotFound
	}
	return s.commerce.RemoveCartLines(ctx, cartID, lineIDs)
}
