// Copyright (c) 2026 Keymaster Team
// emclient - Enclave Manager API clients
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/toeirei/emclient/apierr"
	"github.com/toeirei/emclient/internal/logging"
)

// Request describes a single API call.
type Request struct {
	// Operation names the call in logs and trace spans.
	Operation string
	Method    string
	// Path is appended to the configured base URL. Segments must already be escaped.
	Path  string
	Query url.Values
	// Body is encoded as JSON when non-nil.
	Body        any
	ContentType string
	Accept      string
}

// Client sends Requests to one API endpoint.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu    sync.RWMutex
	token string
}

type operationKey struct{}

// New validates cfg and builds a ready-to-use Client.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apierr.Errorf("invalid base url %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(cfg)
	}

	return &Client{
		baseURL:   u,
		http:      httpClient,
		userAgent: cfg.UserAgent,
		token:     cfg.Token,
	}, nil
}

func newHTTPClient(cfg Config) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: otelhttp.NewTransport(gzhttp.Transport(base), otelhttp.WithSpanNameFormatter(spanName)),
		Timeout:   cfg.Timeout,
	}
}

func spanName(_ string, r *http.Request) string {
	if op, ok := r.Context().Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return r.Method + " " + r.URL.Path
}

// SetToken replaces the bearer token used by subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do performs req and decodes a successful response body into out. A nil
// out discards the body. Any non-2xx status is an error carrying the
// status code and the response text; a 2xx body is returned as-is even when
// it reports an application-level failure.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	target := c.resolve(req.Path, req.Query)

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return apierr.FromJSON(err)
		}
		body = bytes.NewReader(payload)
	}

	ctx = context.WithValue(ctx, operationKey{}, req.Operation)
	hreq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return apierr.Errorf("error creating request: %v", err)
	}
	if body != nil && req.ContentType != "" {
		hreq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Accept != "" {
		hreq.Header.Set("Accept", req.Accept)
	}
	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.currentToken(); token != "" {
		hreq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		logging.Debugf("%s %s %s failed: %v", req.Operation, req.Method, target, err)
		return apierr.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierr.Wrap(err)
	}
	logging.Debugf("%s %s %s -> %d (%s)", req.Operation, req.Method, target, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierr.Errorf("%s: service error: status %d: %s", req.Operation, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierr.FromJSON(err)
	}
	return nil
}

// Call performs req and returns the decoded response as a T.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var result T
	if err := c.Do(ctx, req, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
