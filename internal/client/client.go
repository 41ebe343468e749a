// ABOUTME: HTTP client for the Nkwabiz REST backend
// ABOUTME: Normalizes auth, session expiry, JSON parsing, and backend errors for every call

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/net/proxy"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/session"
)

var (
	// ErrNotAuthenticated is returned for an authenticated call with no cached token
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the token is expired locally or rejected with 401
	ErrSessionExpired = errors.New("session expired, please log in")
	// ErrInvalidJSON is returned when the backend body is not JSON
	ErrInvalidJSON = errors.New("invalid JSON response from backend")
)

// APIError carries a non-2xx response. Body is the backend's JSON, unmodified.
type APIError struct {
	Status int
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	for _, field := range []string{"message", "error", "detail", "msg"} {
		if v := gjson.GetBytes(e.Body, field); v.Exists() && v.Type == gjson.String && v.Str != "" {
			return fmt.Sprintf("backend error: %s", v.Str)
		}
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Message returns the backend's message field when present
func (e *APIError) Message() string {
	return gjson.GetBytes(e.Body, "message").String()
}

// Session is the part of the session owner the client needs.
type Session interface {
	Token() string
	Now() time.Time
	Expire(reason string)
}

// Client is the API client for the Nkwabiz backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the overall HTTP timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSOCKS5Proxy dials the backend through a SOCKS5 proxy at addr (host:port
// or socks5://host:port).
func WithSOCKS5Proxy(addr string) Option {
	return func(c *Client) {
		if addr == "" {
			return
		}
		u, err := url.Parse(addr)
		if err != nil || u.Host == "" {
			u = &url.URL{Scheme: "socks5", Host: addr}
		}
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			c.logger.Warn("Ignoring invalid SOCKS5 proxy", "addr", addr, "error", err)
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, address string) (net.Conn, error) {
				return dialer.Dial(network, address)
			}
		}
		c.httpClient.Transport = transport
	}
}

// New creates a new API client with the given base URL. sess may be nil for
// clients that only call public endpoints.
func New(baseURL string, sess Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one backend call
type Request struct {
	Method string
	Query  url.Values
	Body   any
	Header http.Header
	Auth   bool
}

// Do performs a request and returns the parsed JSON body.
func (c *Client) Do(ctx context.Context, path string, r Request) (json.RawMessage, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var token string
	if r.Auth {
		if c.session != nil {
			token = c.session.Token()
		}
		if token == "" {
			return nil, ErrNotAuthenticated
		}
		if session.Expired(token, c.session.Now()) {
			c.session.Expire(session.ReasonExpired)
			return nil, ErrSessionExpired
		}
	}

	target := c.baseURL + path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			c.session.Expire(session.ReasonRevoked)
		}
		return nil, ErrSessionExpired
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	parsed, err := parseJSON(text)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: parsed}
	}
	return parsed, nil
}

// do performs a request and decodes the JSON body into out (when non-nil)
func (c *Client) do(ctx context.Context, path string, r Request, out any) error {
	raw, err := c.Do(ctx, path, r)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// parseJSON validates the body text. An empty body is JSON null.
func parseJSON(text []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(trimmed) {
		snippet := string(trimmed)
		if len(snippet) > 80 {
			snippet = snippet[:80] + "..."
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidJSON, snippet)
	}
	return json.RawMessage(trimmed), nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// IsSessionError reports whether err means the user must log in again
func IsSessionError(err error) bool {
	return errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNotAuthenticated)
}
