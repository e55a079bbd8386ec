package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stillhouse/site/internal/modules/seo"
	"github.com/stillhouse/site/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = seo.Site{Name: "Stillhouse", URL: "https://stillhouse.example"}

func gbp(amount string) shopify.Money {
	return shopify.Money{Amount: decimal.RequireFromString(amount), CurrencyCode: "GBP"}
}

var navy = shopify.Product{
	Handle:           "navy-strength",
	Title:            "Navy Strength Rum",
	ProductType:      "Rum",
	AvailableForSale: true,
	FeaturedImage:    &shopify.Image{URL: "https://cdn.shopify.com/navy.jpg"},
	Images:           []shopify.Image{{URL: "https://cdn.shopify.com/navy.jpg"}},
	PriceRange:       shopify.PriceRange{MinVariantPrice: gbp("38")},
	Variants: []shopify.Variant{{
		ID: "v1", Title: "70cl", AvailableForSale: true,
		Price: gbp("38"), CompareAtPrice: &shopify.Money{Amount: decimal.RequireFromString("42"), CurrencyCode: "GBP"},
	}},
}

type fakeCommerce struct {
	configured bool
	err        error
	carts      map[string]*shopify.Cart
	created    atomic.Int32
}

func (f *fakeCommerce) Configured() bool { return f.configured }

func (f *fakeCommerce) Product(_ context.Context, handle string) (*shopify.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if handle != navy.Handle {
		return nil, shopify.ErrNotFound
	}
	p := navy
	return &p, nil
}

func (f *fakeCommerce) Collections(context.Context) ([]shopify.Collection, error) {
	return []shopify.Collection{{Handle: "rum", Title: "Rum"}}, f.err
}

func (f *fakeCommerce) Collection(_ context.Context, handle string) (*shopify.Collection, error) {
	if handle != "rum" {
		return nil, shopify.ErrNotFound
	}
	return &shopify.Collection{Handle: "rum", Title: "Rum", Products: []shopify.Product{navy}}, nil
}

func (f *fakeCommerce) Cart(_ context.Context, id string) (*shopify.Cart, error) {
	if cart, ok := f.carts[id]; ok {
		return cart, nil
	}
	return nil, shopify.ErrNotFound
}

func (f *fakeCommerce) CreateCart(_ context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	f.created.Add(1)
	cart := &shopify.Cart{ID: "gid://shopify/Cart/new", CheckoutURL: "https://shop.example/checkout/new", TotalQuantity: lines[0].Quantity}
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeCommerce) AddCartLines(_ context.Context, id string, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	if lines[0].MerchandiseID == "sold-out" {
		return nil, shopify.UserErrors{{Message: "Variant sold out"}}
	}
	cart, ok := f.carts[id]
	if !ok {
		return nil, shopify.ErrNotFound
	}
	cart.TotalQuantity += lines[0].Quantity
	return cart, nil
}

func (f *fakeCommerce) UpdateCartLines(_ context.Context, id string, _ []shopify.CartLineUpdate) (*shopify.Cart, error) {
	return f.Cart(context.Background(), id)
}

func (f *fakeCommerce) RemoveCartLines(_ context.Context, id string, _ []string) (*shopify.Cart, error) {
	return f.Cart(context.Background(), id)
}

type fakeCatalog struct {
	products    []shopify.Product
	err         error
	invalidated atomic.Int32
}

func (f *fakeCatalog) Configured() bool { return true }

func (f *fakeCatalog) Products(context.Context) ([]shopify.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) Invalidate(context.Context) error {
	f.invalidated.Add(1)
	return nil
}

func newRouter(commerce *fakeCommerce, catalog *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewService(commerce, catalog, testSite, nil)
	NewHandler(svc, nil, false).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestShop_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(&fakeCommerce{}, nil, testSite, nil), nil, false).RegisterRoutes(r.Group("/api"))

	for _, path := range []string{"/api/shop/products", "/api/shop/products/navy", "/api/shop/collections", "/api/cart"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestShop_ListProducts(t *testing.T) {
	dryGin := shopify.Product{Handle: "dry-gin", Title: "Dry Gin", ProductType: "Gin", PriceRange: shopify.PriceRange{MinVariantPrice: gbp("32")}}
	r := newRouter(&fakeCommerce{configured: true}, &fakeCatalog{products: []shopify.Product{navy, dryGin}})

	w := do(r, http.MethodGet, "/api/shop/products?type=rum", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data       []ProductCard `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.Pagination.Total)
	card := body.Data[0]
	assert.Equal(t, "/shop/product/navy-strength", card.URL)
	assert.Equal(t, "38.00 GBP", card.Price)
	assert.Equal(t, "42.00 GBP", card.CompareAt)
	require.NotNil(t, card.Image)
	assert.Equal(t, "Navy Strength Rum", card.Image.Alt)
}

func TestShop_CatalogFailure(t *testing.T) {
	r := newRouter(&fakeCommerce{configured: true}, &fakeCatalog{err: errors.New("shopify 500")})
	w := do(r, http.MethodGet, "/api/shop/products", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "shopify 500")
}

func TestShop_ProductPage(t *testing.T) {
	r := newRouter(&fakeCommerce{configured: true}, &fakeCatalog{})

	w := do(r, http.MethodGet, "/api/shop/products/navy-strength", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))

	var md seo.Metadata
	require.NoError(t, json.Unmarshal(page["metadata"], &md))
	assert.Equal(t, "Navy Strength Rum | Stillhouse", md.Title)
	assert.Equal(t, "product", md.OpenGraph.Type)

	var crumbs []seo.Crumb
	require.NoError(t, json.Unmarshal(page["breadcrumbs"], &crumbs))
	assert.Equal(t, []seo.Crumb{{Name: "Home", Path: "/"}, {Name: "Shop", Path: "/shop"}, {Name: "Navy Strength Rum", Path: "/shop/product/navy-strength"}}, crumbs)

	var ld []map[string]interface{}
	require.NoError(t, json.Unmarshal(page["jsonLd"], &ld))
	require.Len(t, ld, 2)
	assert.Equal(t, "Product", ld[0]["@type"])
	assert.Equal(t, "BreadcrumbList", ld[1]["@type"])

	w = do(r, http.MethodGet, "/api/shop/products/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShop_Collection(t *testing.T) {
	r := newRouter(&fakeCommerce{configured: true}, &fakeCatalog{})
	w := do(r, http.MethodGet, "/api/shop/collections/rum", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page CollectionPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "/shop/collections/rum", page.Collection.URL)
	require.Len(t, page.Products, 1)

	w = do(r, http.MethodGet, "/api/shop/collections", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data"`)
}

func cookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CartCookie {
			return ck
		}
	}
	return nil
}

func TestCart_Flow(t *testing.T) {
	commerce := &fakeCommerce{configured: true, carts: map[string]*shopify.Cart{}}
	r := newRouter(commerce, &fakeCatalog{})

	w := do(r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var empty shopify.Cart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty.ID)
	assert.NotNil(t, empty.Lines)
	assert.Nil(t, cookieFrom(w))

	w = do(r, http.MethodPost, "/api/cart/lines", `{"lines":[{"merchandiseId":"v1","quantity":2}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	ck := cookieFrom(w)
	require.NotNil(t, ck)
	assert.Equal(t, "gid://shopify/Cart/new", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Contains(t, w.Body.String(), "https://shop.example/checkout/new")

	w = do(r, http.MethodPost, "/api/cart/lines", `{"lines":[{"merchandiseId":"v1","quantity":1}]}`, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, commerce.created.Load())
	assert.Equal(t, 3, commerce.carts[ck.Value].TotalQuantity)

	w = do(r, http.MethodPost, "/api/cart/lines", `{"lines":[{"merchandiseId":"sold-out","quantity":1}]}`, ck)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Variant sold out")

	w = do(r, http.MethodDelete, "/api/cart/lines", `{"lineIds":["l1"]}`, ck)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCart_ExpiredCookie(t *testing.T) {
	commerce := &fakeCommerce{configured: true, carts: map[string]*shopify.Cart{}}
	r := newRouter(commerce, &fakeCatalog{})
	stale := &http.Cookie{Name: CartCookie, Value: "gid://shopify/Cart/gone"}

	w := do(r, http.MethodGet, "/api/cart", "", stale)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieFrom(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	w = do(r, http.MethodPost, "/api/cart/lines", `{"lines":[{"merchandiseId":"v1","quantity":1}]}`, stale)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, commerce.created.Load())
	assert.Equal(t, "gid://shopify/Cart/new", cookieFrom(w).Value)

	w = do(r, http.MethodPatch, "/api/cart/lines", `{"lines":[{"id":"l1","quantity":0}]}`, stale)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCart_Validation(t *testing.T) {
	r := newRouter(&fakeCommerce{configured: true, carts: map[string]*shopify.Cart{}}, &fakeCatalog{})

	for _, body := range []string{
		`{}`,
		`{"lines":[]}`,
		`{"lines":[{"merchandiseId":"","quantity":1}]}`,
		`{"lines":[{"merchandiseId":"v1","quantity":0}]}`,
		`{"lines":[{"merchandiseId":"v1","quantity":500}]}`,
		`not json`,
	} {
		w := do(r, http.MethodPost, "/api/cart/lines", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
	}

	w := do(r, http.MethodPatch, "/api/cart/lines", `{"lines":[{"id":"l1"}]}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "quantity 0 is a valid update; the missing cart is the problem")
}

func newWebhookRouter(secret string, catalog *fakeCatalog, purged *atomic.Int32) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	purge := func(context.Context) (int64, error) {
		purged.Add(1)
		return 3, nil
	}
	NewWebhookHandler(secret, catalog, purge, nil).RegisterRoutes(r.Group("/api"))
	return r
}

func webhookRequest(secret, topic string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/shopify", bytes.NewReader(body))
	req.Header.Set(HeaderTopic, topic)
	req.Header.Set(HeaderHMAC, Sign(secret, body))
	return req
}

func TestWebhook(t *testing.T) {
	catalog := &fakeCatalog{}
	var purged atomic.Int32
	r := newWebhookRouter("shpss_test", catalog, &purged)
	body := []byte(`{"id":1,"handle":"navy-strength"}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest("shpss_test", "products/update", body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"topic":"products/update","invalidated":true,"purged":3}`, w.Body.String())
	assert.EqualValues(t, 1, catalog.invalidated.Load())
	assert.EqualValues(t, 1, purged.Load())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest("shpss_test", "orders/create", body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, catalog.invalidated.Load())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest("wrong", "products/update", body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":401,"message":"Invalid signature"}`, w.Body.String())
	assert.EqualValues(t, 1, catalog.invalidated.Load())
}

func TestWebhook_NoSecret(t *testing.T) {
	var purged atomic.Int32
	r := newWebhookRouter("", &fakeCatalog{}, &purged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, webhookRequest("", "products/update", []byte(`{}`)))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
