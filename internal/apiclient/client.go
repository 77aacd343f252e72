// Package apiclient is the HTTP client for the backend REST API.
//
// Every request reads the stored access token, attaches it as a bearer
// credential and normalizes non-success responses into *APIError. A 401 from
// any authenticated endpoint tears the session down and asks the configured
// Navigator to go to the login route.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/metrics"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
)

const (
	DefaultPrefix    = "/api"
	DefaultLoginPath = "/dev-login"

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerCorrelationID = "X-Correlation-Id"
	mimeJSON            = "application/json"
)

// Client talks to one backend on behalf of one token store.
type Client struct {
	baseURL   string
	prefix    string
	loginPath string
	http      *http.Client
	store     ports.TokenStore
	navigator ports.Navigator
	log       zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPrefix overrides the API base path ("/api").
func WithPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = "/" + strings.Trim(prefix, "/") }
}

// WithLoginPath overrides the dev login endpoint ("/dev-login").
func WithLoginPath(p string) Option {
	return func(c *Client) { c.loginPath = "/" + strings.TrimLeft(p, "/") }
}

// WithNavigator sets the effect run after a 401 teardown.
func WithNavigator(n ports.Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for baseURL (scheme and host, e.g.
// "http://localhost:8000") reading credentials from store.
func New(baseURL string, store ports.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		prefix:    DefaultPrefix,
		loginPath: DefaultLoginPath,
		http:      http.DefaultClient,
		store:     store,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.prefix == "/" {
		c.prefix = ""
	}
	return c
}

// Do sends a request to prefix+endpoint and decodes a JSON response into out.
// body, when non-nil, is encoded as JSON. headers are merged over the
// defaults. out may be nil. Empty and 204 responses leave out untouched.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, headers http.Header, out any) error {
	return c.send(ctx, method, c.prefix+endpoint, body, headers, out, true)
}

func (c *Client) send(ctx context.Context, method, path string, body any, headers http.Header, out any, teardown bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(headerContentType, mimeJSON)
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if id := CorrelationID(ctx); id != "" && req.Header.Get(headerCorrelationID) == "" {
		req.Header.Set(headerCorrelationID, id)
	}

	resource := resourceOf(path, c.prefix)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(resource, method, "error").Inc()
		return err
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(resource, method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		apiErr := newAPIError(resp.StatusCode, raw)
		if teardown && IsUnauthorized(resp.StatusCode) {
			c.tearDown(ctx)
		}
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg(apiErr.Message)
		return apiErr
	}

	if isEmpty(resp, raw) || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.store == nil {
		return "", nil
	}
	token, _, err := c.store.Get(ctx, domain.KeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	return token, nil
}

// tearDown clears the stored token and expiry and navigates to the login
// route. The role list is left in place.
func (c *Client) tearDown(ctx context.Context) {
	metrics.SessionTeardownsTotal.Inc()
	if c.store != nil {
		for _, key := range []string{domain.KeyAccessToken, domain.KeyTokenExpiresAt} {
			if err := c.store.Remove(ctx, key); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("failed to clear token store entry")
			}
		}
	}
	location := domain.LoginRedirect(CurrentPath(ctx))
	c.log.Info().Str("location", location).Msg("session rejected by backend, redirecting to login")
	if c.navigator != nil {
		c.navigator.Navigate(ctx, location)
	}
}

// IsUnauthorized reports whether status invalidates the session.
func IsUnauthorized(status int) bool {
	return status == http.StatusUnauthorized
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func isEmpty(resp *http.Response, raw []byte) bool {
	return resp.StatusCode == http.StatusNoContent ||
		resp.Header.Get("Content-Length") == "0" ||
		len(bytes.TrimSpace(raw)) == 0
}

// resourceOf returns the first path segment after the prefix, used as a
// low-cardinality metric label.
func resourceOf(path, prefix string) string {
	p := strings.TrimPrefix(path, prefix)
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
