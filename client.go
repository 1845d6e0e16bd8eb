package almaclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Client is the Alma API transport. It owns the gateway URL, the API key and
// the HTTP client; resource services share one Client.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *zap.Logger
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient injects the underlying HTTP client, e.g. for tests or custom
// transports.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger injects a zap logger. Without it the client stays silent.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client from the configuration.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("alma client: API key is required")
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: cfg.Timeout}
	}
	return c, nil
}

// Bibs returns the bibliographic records service.
func (c *Client) Bibs() *BibsService { return &BibsService{c: c} }

// Holdings returns the holding records service.
func (c *Client) Holdings() *HoldingsService { return &HoldingsService{c: c} }

// Items returns the item records service.
func (c *Client) Items() *ItemsService { return &ItemsService{c: c} }

// Analytics returns the analytics service.
func (c *Client) Analytics() *AnalyticsService { return &AnalyticsService{c: c} }

// Response is one completed exchange: the status, headers and the fully-read
// body. The transport never interprets a 2xx body; that is the caller's job.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// ContentType returns the response's declared content type.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Get performs a GET against the gateway.
func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, headers, nil)
}

// Post performs a POST with the given body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, headers map[string]string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, query, headers, body)
}

// Put performs a PUT with the given body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, headers map[string]string, body []byte) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, query, headers, body)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body []byte) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("alma client: build request: %w", err)
	}
	req.Header.Set("Authorization", "apikey "+c.apiKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("alma request", zap.String("method", method), zap.String("url", u))
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alma client: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alma client: read response body: %w", err)
	}
	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data, URL: u}
	if resp.StatusCode >= 400 {
		err := c.classify(out)
		c.log.Warn("alma request failed",
			zap.String("method", method), zap.String("url", u),
			zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// classify maps a non-2xx response onto the error family, carrying the
// service-supplied detail along.
func (c *Client) classify(r *Response) error {
	detail := ExtractErrorDetail(r.ContentType(), r.Body)
	switch r.StatusCode {
	case http.StatusBadRequest:
		// The gateway answers 400 both for bad input and for a rejected key.
		if strings.Contains(strings.ToLower(detail), "api-key") ||
			strings.Contains(strings.ToLower(detail), "api key") {
			e := NewAuthenticationError("", r.URL, detail)
			e.StatusCode = r.StatusCode
			return e
		}
		return NewInvalidInputError("", r.URL, detail)
	case http.StatusUnauthorized, http.StatusForbidden:
		e := NewAuthenticationError("", r.URL, detail)
		e.StatusCode = r.StatusCode
		return e
	case http.StatusNotFound:
		return NewNotFoundError("", r.URL, detail)
	case http.StatusTooManyRequests:
		return NewRateLimitError("", r.URL, detail)
	default:
		return &APIError{
			Message:    fmt.Sprintf("Alma API request failed with status %d", r.StatusCode),
			StatusCode: r.StatusCode,
			URL:        r.URL,
			Detail:     detail,
		}
	}
}
