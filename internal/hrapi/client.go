// Package hrapi is the client for the upstream HR REST API. It owns the
// CSRF-token lifecycle, the upstream cookie jar mirrored into each session
// record, and the single error-normalization path every collaborator
// endpoint call goes through.
package hrapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/myhr/portal-gateway/internal/api/metrics"
	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/ports"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"

	// Upstream tokens are long random strings; anything this short is a
	// placeholder or a parse artefact, not a usable token.
	minTokenLength = 10

	defaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// Client talks to the upstream HR API on behalf of gateway sessions.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
	resolve singleflight.Group
}

// New creates a Client for the given upstream base URL. A non-positive
// timeout falls back to 10s so no upstream call can hang a request forever.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

var _ ports.HRClient = (*Client)(nil)

// isMutating reports whether a method requires the CSRF header upstream.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// newRequest builds an upstream request carrying the session's cookies and,
// for mutating methods, its CSRF token. The caller must have validated the
// token before building a mutating request.
func (c *Client) newRequest(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body []byte) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range sess.UpstreamCookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if isMutating(method) {
		req.Header.Set(csrfHeaderName, sess.CSRFToken)
	}

	return req, nil
}

// do executes the request, mirrors any Set-Cookie headers into the session
// record and records the upstream latency.
func (c *Client) do(req *http.Request, sess *domain.Session) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	outcome := "error"
	if err == nil {
		outcome = strconv.Itoa(resp.StatusCode)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(req.Method, outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	for _, ck := range resp.Cookies() {
		if ck.Value != "" {
			sess.SetUpstreamCookie(ck.Name, ck.Value)
		}
	}
	return resp, nil
}

// Forward relays one collaborator-endpoint call upstream. Mutating calls
// without a usable CSRF token are short-circuited before any wire I/O.
func (c *Client) Forward(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body []byte) (*ports.ProxyResult, error) {
	if isMutating(method) {
		if _, err := c.ensureToken(ctx, sess); err != nil {
			return nil, err
		}
	}

	req, err := c.newRequest(ctx, sess, method, path, query, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, sess)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	result := &ports.ProxyResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
		OK:          resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if !result.OK {
		result.ErrorMessage = NormalizeError(result.ContentType, raw)
	}
	return result, nil
}
