// Package shopify is a thin client for the Shopify Storefront GraphQL API.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned by every call when store credentials are missing.
	ErrNotConfigured = errors.New("shopify: store domain or storefront token not configured")
	// ErrNotFound is returned when a lookup by handle or id resolves to null.
	ErrNotFound = errors.New("shopify: not found")
)

// Config holds Storefront API settings.
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	// Endpoint overrides the GraphQL URL derived from StoreDomain.
	Endpoint   string
	HTTPClient *http.Client
}

// Client issues Storefront API queries.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// HTTPError is a non-2xx response from the Storefront API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shopify error %d: %s", e.StatusCode, e.Body)
}

// GraphQLError is one entry of the top-level "errors" array.
type GraphQLError struct {
	Message string `json:"message"`
}

// GraphQLErrors is returned when the response carries query errors.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ge := range e {
		msgs = append(msgs, ge.Message)
	}
	return "shopify graphql: " + strings.Join(msgs, "; ")
}

// UserError is a mutation validation error (cart mutations).
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// UserErrors is returned when a mutation reports userErrors.
type UserErrors []UserError

func (e UserErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ue := range e {
		msgs = append(msgs, ue.Message)
	}
	return "shopify: " + strings.Join(msgs, "; ")
}

func New(cfg Config) *Client {
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = "2024-10"
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if domain := strings.TrimSpace(cfg.StoreDomain); endpoint == "" && domain != "" {
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", domain, version)
	}
	token := strings.TrimSpace(cfg.AccessToken)

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{endpoint: endpoint, token: token, http: hc}
}

// Configured reports whether both the store endpoint and access token are set.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != "" && c.token != ""
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors"`
}

// do runs a query and decodes its "data" member into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("shopify decode: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return envelope.Errors
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("shopify decode data: %w", err)
	}
	return nil
}
