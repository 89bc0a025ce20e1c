package meili

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/little-fluffy/notesearch/document"
)

// Client talks to one index of a Meilisearch server.
type Client struct {
	host   string
	apiKey string
	index  string
	http   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key sent as a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the given server host and index name.
func NewClient(host, index string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(host); err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", host, err)
	}
	c := &Client{
		host:  strings.TrimRight(host, "/"),
		index: index,
		http:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) url(path string) string {
	return c.host + "/" + path
}

// Search runs a search query against the index.
func (c *Client) Search(ctx context.Context, q Query) (*Response, error) {
	body, err := c.post(ctx, fmt.Sprintf("indexes/%s/search", c.index), q)
	if err != nil {
		return nil, err
	}

	// decode in two steps so a failure can quote the body verbatim
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("could not decode response %q: %w", string(body), err)
	}
	return &resp, nil
}

// AddDocuments adds or replaces documents in the index. The backend indexes
// asynchronously; a success here means the update was accepted, not applied.
func (c *Client) AddDocuments(ctx context.Context, docs []document.Document) error {
	_, err := c.post(ctx, fmt.Sprintf("indexes/%s/documents", c.index), docs)
	return err
}

// Health checks whether the server is reachable and willing.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("health"), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check: server returned %s", resp.Status)
	}
	return nil
}

// post sends payload as JSON and returns the response body on 2xx.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	slog.Debug("posting to backend", "path", path, "bytes", len(encoded))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request to %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return body, nil
}
