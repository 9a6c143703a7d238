// Package postgrest is a minimal client for the Supabase PostgREST API,
// covering the table-scoped verbs and filters the MCP tools are built on.
package postgrest

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const restPath = "/rest/v1"

// Client talks to one Supabase project's REST endpoint. It is immutable
// after creation and safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	serviceKey string
	httpClient *http.Client
}

// Option is a functional option for NewClient().
type Option func(*Client)

// WithTimeout sets the HTTP client timeout inherited by every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the given Supabase project URL
// (e.g. https://xyz.supabase.co) authenticated with the service-role key.
// The /rest/v1 path segment is appended unless already present.
func NewClient(endpointURL, serviceKey string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL %q: %w", endpointURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint URL %q must use http or https", endpointURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(u.Path, restPath) {
		u.Path += restPath
	}

	c := &Client{
		baseURL:    u,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Table starts a request against the named table. The table name is opaque
// to this layer — the backend is the source of truth for its existence.
func (c *Client) Table(name string) *Builder {
	return &Builder{
		client: c,
		table:  name,
		params: url.Values{},
	}
}

// setAuthHeaders sets the headers every PostgREST request carries.
func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
}
