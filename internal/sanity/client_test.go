package sanity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{ProjectID: "abc", Dataset: "production", APIVersion: "v2024-01-01", Token: token, BaseURL: srv.URL})
}

func TestNew_QueryURL(t *testing.T) {
	assert.False(t, New(Config{Dataset: "production"}).Configured())

	cdn := New(Config{ProjectID: "abc", Dataset: "production", UseCDN: true})
	assert.Equal(t, "https://abc.apicdn.sanity.io/v2024-01-01/data/query/production", cdn.queryURL)

	authed := New(Config{ProjectID: "abc", Dataset: "production", UseCDN: true, Token: "sk", APIVersion: "2023-05-03"})
	assert.Equal(t, "https://abc.api.sanity.io/v2023-05-03/data/query/production", authed.queryURL)
}

func TestQuery_EncodesParams(t *testing.T) {
	client := newTestClient(t, "sk", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, "Bearer sk", r.Header.Get("Authorization"))
		assert.Equal(t, `"*rum*"`, r.URL.Query().Get("$q"))
		assert.Contains(t, r.URL.Query().Get("query"), `_type == "guide"`)
		assert.Contains(t, r.URL.Query().Get("query"), "[0...10]")
		_, _ = w.Write([]byte(`{"result":[{"_id":"g1","title":"Rum Basics","slug":"rum-basics","category":"rum-guides"}]}`))
	})

	guides, err := client.SearchGuides(context.Background(), "*rum*")
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "rum-basics", guides[0].Slug)
	assert.Equal(t, "rum-guides", guides[0].Category)
}

func TestSearchQueries_Fields(t *testing.T) {
	assert.True(t, strings.Contains(equipmentSearchQuery, "name match $q || description match $q || category match $q"))
	assert.True(t, strings.Contains(guideSearchQuery, "title match $q || excerpt match $q || introduction match $q || category match $q"))
	assert.True(t, strings.Contains(guideSearchQuery, "order(publishedAt desc)"))
	assert.True(t, strings.Contains(cocktailSearchQuery, "order(_createdAt desc)"))
	for _, q := range []string{cocktailSearchQuery, equipmentSearchQuery, ingredientSearchQuery, guideSearchQuery} {
		assert.Contains(t, q, "defined(slug.current)", "slugless documents would produce duplicate bare URLs")
	}
}

func TestDetail_NotFound(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, `"missing"`, r.URL.Query().Get("$slug"))
		_, _ = w.Write([]byte(`{"result":null}`))
	})
	_, err := client.CocktailBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_EmptyCategory(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `""`, r.URL.Query().Get("$category"))
		_, _ = w.Write([]byte(`{"result":[]}`))
	})
	cocktails, err := client.Cocktails(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, cocktails)
	assert.Empty(t, cocktails)
}

func TestQuery_HTTPError(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"param $q referenced, but not provided"}}`))
	})
	_, err := client.SearchEquipment(context.Background(), "*x*")
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.StatusCode)
}

func TestQuery_NotConfigured(t *testing.T) {
	_, err := New(Config{}).Guides(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
