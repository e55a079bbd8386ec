// Package sanity queries the Sanity Content Lake with GROQ.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("sanity: project id or dataset not configured")
	ErrNotFound      = errors.New("sanity: document not found")
)

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	Timeout    time.Duration
	// BaseURL overrides https://{project}.api[cdn].sanity.io.
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	queryURL string
	token    string
	http     *http.Client
}

// HTTPError is a non-2xx response from the query API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sanity error %d: %s", e.StatusCode, e.Body)
}

func New(cfg Config) *Client {
	projectID := strings.TrimSpace(cfg.ProjectID)
	dataset := strings.TrimSpace(cfg.Dataset)
	version := strings.TrimPrefix(strings.TrimSpace(cfg.APIVersion), "v")
	if version == "" {
		version = "2024-01-01"
	}

	var queryURL string
	if projectID != "" && dataset != "" {
		base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
		if base == "" {
			host := "api"
			// Authenticated requests bypass the CDN so drafts and private datasets resolve.
			if cfg.UseCDN && cfg.Token == "" {
				host = "apicdn"
			}
			base = fmt.Sprintf("https://%s.%s.sanity.io", projectID, host)
		}
		queryURL = fmt.Sprintf("%s/v%s/data/query/%s", base, version, url.PathEscape(dataset))
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{queryURL: queryURL, token: strings.TrimSpace(cfg.Token), http: hc}
}

func (c *Client) Configured() bool {
	return c != nil && c.queryURL != ""
}

// Params are GROQ parameters; each value is JSON-encoded into a $name query argument.
type Params map[string]interface{}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs a GROQ query and decodes "result" into out. A null result leaves
// out untouched and returns ErrNotFound so detail lookups can branch on it.
func (c *Client) Query(ctx context.Context, groq string, params Params, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	values := url.Values{}
	values.Set("query", groq)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("sanity param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var envelope queryResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("sanity decode: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("sanity decode result: %w", err)
	}
	return nil
}
