package kpcc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the versioned API root every request path resolves
	// against.
	DefaultBaseURL = "https://www.scpr.org/api/v3/"

	defaultUserAgent = "kpcc-go/0.1"
)

// DebugLevel controls request logging.
type DebugLevel int32

const (
	DebugDisabled DebugLevel = iota
	DebugBasic               // log resolved URLs
	DebugVerbose             // also log response bodies
)

func (l DebugLevel) String() string {
	switch l {
	case DebugBasic:
		return "basic"
	case DebugVerbose:
		return "verbose"
	default:
		return "disabled"
	}
}

// ParseDebugLevel accepts "disabled", "basic" or "verbose" (case-insensitive).
// An empty string is DebugDisabled.
func ParseDebugLevel(s string) (DebugLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disabled", "off":
		return DebugDisabled, nil
	case "basic":
		return DebugBasic, nil
	case "verbose":
		return DebugVerbose, nil
	default:
		return DebugDisabled, fmt.Errorf("unknown debug level %q", s)
	}
}

// Client talks to the KPCC content API. A Client is safe for concurrent use;
// one failed call never affects later calls.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	debug     atomic.Int32
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at another API root, such as a fixture
// server. A trailing slash is added so relative paths keep the prefix.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := parseBaseURL(raw)
		if err != nil {
			return err
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient replaces the default http.Client. Timeouts belong on the
// supplied client or on the request context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client is nil")
		}
		c.http = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithDebugLevel sets the initial debug level.
func WithDebugLevel(level DebugLevel) Option {
	return func(c *Client) error {
		c.debug.Store(int32(level))
		return nil
	}
}

// WithLogger sets the destination for debug records. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// NewClient builds a Client against DefaultBaseURL unless overridden.
func NewClient(opts ...Option) (*Client, error) {
	base, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns a copy of the API root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// DebugLevel returns the current debug level.
func (c *Client) DebugLevel() DebugLevel {
	return DebugLevel(c.debug.Load())
}

// SetDebugLevel changes the debug level. It may be called while requests are
// in flight.
func (c *Client) SetDebugLevel(level DebugLevel) {
	c.debug.Store(int32(level))
}

// get performs one GET for req and returns the raw body. It never retries.
func (c *Client) get(ctx context.Context, op string, req Request) ([]byte, error) {
	if c == nil {
		return nil, newError(KindOther, op, req.Path, fmt.Errorf("client is nil"))
	}
	rel, err := req.URL()
	if err != nil {
		return nil, newError(KindBuildComponents, op, req.Path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	if !reqURL.IsAbs() {
		return nil, newError(KindBuildComponents, op, req.Path, fmt.Errorf("resolved url %q is not absolute", reqURL))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, newError(KindBuildComponents, op, req.Path, fmt.Errorf("create request: %w", err))
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-Id", requestID)

	level := c.DebugLevel()
	logger := c.logger.With("component", "kpcc", "op", op, "request_id", requestID)
	if level >= DebugBasic {
		logger.Info("api get", "url", reqURL.String())
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, newError(KindDataUnavailable, op, req.Path, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindDataUnavailable, op, req.Path, fmt.Errorf("read response: %w", err))
	}
	if level >= DebugVerbose {
		logger.Info("api response", "status", resp.StatusCode, "bytes", len(body), "body", string(body))
	}

	if resp.StatusCode >= 400 {
		apiErr := newError(KindDataUnavailable, op, req.Path, nil)
		apiErr.StatusCode = resp.StatusCode
		return nil, apiErr
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, newError(KindDataUnavailable, op, req.Path, fmt.Errorf("empty response body"))
	}
	return body, nil
}

// fetch runs the full pipeline for one call: transport, then decodeFn.
func fetch[T any](ctx context.Context, c *Client, op string, req Request, decodeFn func([]byte) (T, error)) (T, error) {
	var zero T
	body, err := c.get(ctx, op, req)
	if err != nil {
		return zero, err
	}
	value, err := decodeFn(body)
	if err != nil {
		return zero, newError(classifyDecodeError(err), op, req.Path, fmt.Errorf("decode response: %w", err))
	}
	return value, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
