package shopify

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is a Storefront MoneyV2.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// String formats the amount with two decimals and the currency code, e.g. "34.00 GBP".
func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.CurrencyCode
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	SKU              string           `json:"sku,omitempty"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions  []SelectedOption `json:"selectedOptions,omitempty"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Product struct {
	ID               string     `json:"id"`
	Handle           string     `json:"handle"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DescriptionHTML  string     `json:"descriptionHtml,omitempty"`
	ProductType      string     `json:"productType,omitempty"`
	Vendor           string     `json:"vendor,omitempty"`
	Tags             []string   `json:"tags"`
	AvailableForSale bool       `json:"availableForSale"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	FeaturedImage    *Image     `json:"featuredImage,omitempty"`
	Images           []Image    `json:"images,omitempty"`
	PriceRange       PriceRange `json:"priceRange"`
	Variants         []Variant  `json:"variants,omitempty"`
	SEO              SEO        `json:"seo"`
}

// URL is the storefront path of the product page.
func (p Product) URL() string {
	return "/shop/product/" + p.Handle
}

type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *Image    `json:"image,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Products    []Product `json:"products,omitempty"`
}

type CartCost struct {
	SubtotalAmount Money  `json:"subtotalAmount"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalTaxAmount *Money `json:"totalTaxAmount,omitempty"`
}

type CartMerchandise struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Price   Money  `json:"price"`
	Image   *Image `json:"image,omitempty"`
	Product struct {
		Handle string `json:"handle"`
		Title  string `json:"title"`
	} `json:"product"`
}

type CartLine struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Cost     struct {
		TotalAmount Money `json:"totalAmount"`
	} `json:"cost"`
	Merchandise CartMerchandise `json:"merchandise"`
}

type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	TotalQuantity int        `json:"totalQuantity"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
}

// CartLineInput adds a variant to a cart.
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartLineUpdate changes the quantity of an existing line.
type CartLineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
