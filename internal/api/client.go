package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 5 * time.Second

	// maxErrorBody caps how much of a failed response body is kept.
	maxErrorBody = 512

	breakerMaxFailures = 5
	breakerOpenFor     = 10 * time.Second
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return "HTTP " + strconv.Itoa(e.Code)
}

// Searcher is the subset of Client the interactive controller needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*Response, error)
	Similar(ctx context.Context, id int, limit int) (*Response, error)
	Status(ctx context.Context) (*Status, error)
}

// Client talks to the ranking service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// Compile-time check that Client implements Searcher.
var _ Searcher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient returns a client for the service rooted at baseURL
// (for example "http://localhost:8080").
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ranking-service",
		MaxRequests: 1,
		Timeout:     breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		// Client errors and cancellations say nothing about backend health.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return false
		},
	})
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search runs a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) (*Response, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var resp Response
	if err := c.get(ctx, "/api/search", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Similar returns bookmarks related to the bookmark with the given id.
func (c *Client) Similar(ctx context.Context, id int, limit int) (*Response, error) {
	q := url.Values{}
	q.Set("id", strconv.Itoa(id))
	q.Set("limit", strconv.Itoa(limit))

	var resp Response
	if err := c.get(ctx, "/api/similar", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status reports index size and embedding backend availability.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.get(ctx, "/api/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Reindex asks the service to rebuild its index. It returns once the
// rebuild has been started, not when it completes.
func (c *Client) Reindex(ctx context.Context) (*ReindexResult, error) {
	var res ReindexResult
	if err := c.call(ctx, http.MethodPost, "/api/reindex", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, http.MethodGet, path, query, out)
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, method, endpoint, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("search service unavailable: %w", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
