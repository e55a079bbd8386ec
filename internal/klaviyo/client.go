// Package klaviyo subscribes newsletter sign-ups to a Klaviyo list.
package klaviyo

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

const (
	DefaultBaseURL  = "https://a.klaviyo.com/api"
	DefaultRevision = "2024-10-15"
)

var ErrNotConfigured = errors.New("klaviyo: api key or list id not configured")

type Config struct {
	APIKey   string
	ListID   string
	Revision string
	BaseURL  string
	Timeout  time.Duration

	HTTPClient *http.Client
}

type Client struct {
	apiKey   string
	listID   string
	revision string
	baseURL  string
	http     *http.Client
}

// HTTPError is a non-2xx answer from the Klaviyo API.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("klaviyo error %d: %s", e.StatusCode, e.Detail)
}

func New(cfg Config) *Client {
	c := &Client{
		apiKey:   cfg.APIKey,
		listID:   cfg.ListID,
		revision: cfg.Revision,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     cfg.HTTPClient,
	}
	if c.revision == "" {
		c.revision = DefaultRevision
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != "" && c.listID != ""
}

type resource struct {
	Type          string                 `json:"type"`
	ID            string                 `json:"id,omitempty"`
	Attributes    map[string]interface{} `json:"attributes,omitempty"`
	Relationships map[string]relation    `json:"relationships,omitempty"`
}

type relation struct {
	Data resource `json:"data"`
}

type document struct {
	Data resource `json:"data"`
}

// Subscribe opts email into marketing for the configured list. A first name,
// when given, is written to the profile beforehand so the welcome flow can use it.
func (c *Client) Subscribe(ctx context.Context, email, firstName, source string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if firstName != "" {
		profile := document{Data: resource{
			Type:       "profile",
			Attributes: map[string]interface{}{"email": email, "first_name": firstName},
		}}
		if err := c.post(ctx, "/profile-import/", profile); err != nil {
			return err
		}
	}

	attrs := map[string]interface{}{
		"profiles": map[string]interface{}{
			"data": []resource{{
				Type: "profile",
				Attributes: map[string]interface{}{
					"email": email,
					"subscriptions": map[string]interface{}{
						"email": map[string]interface{}{
							"marketing": map[string]string{"consent": "SUBSCRIBED"},
						},
					},
				},
			}},
		},
	}
	if source != "" {
		attrs["custom_source"] = source
	}
	job := document{Data: resource{
		Type:       "profile-subscription-bulk-create-job",
		Attributes: attrs,
		Relationships: map[string]relation{
			"list": {Data: resource{Type: "list", ID: c.listID}},
		},
	}}
	return c.post(ctx, "/profile-subscription-bulk-create-jobs/", job)
}

type errorBody struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Klaviyo-API-Key "+c.apiKey)
	req.Header.Set("revision", c.revision)
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("Content-Type", "application/vnd.api+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	detail := strings.TrimSpace(string(raw))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && len(eb.Errors) > 0 {
		details := make([]string, 0, len(eb.Errors))
		for _, e := range eb.Errors {
			details = append(details, e.Detail)
		}
		detail = strings.Join(details, "; ")
	}
	return &HTTPError{StatusCode: resp.StatusCode, Detail: detail}
}
