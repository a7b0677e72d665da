package hrapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/myhr/portal-gateway/internal/api/metrics"
	"github.com/myhr/portal-gateway/internal/core/domain"
)

// csrfResponse covers the backend variant that returns the token in the
// body as well as in the cookie. The cookie wins when both are present.
type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// validToken enforces the cookie contract: tokens must be non-trivial length
// before any mutating call is attempted.
func validToken(token string) bool {
	return len(token) > minTokenLength
}

// Token returns the mirrored upstream CSRF token, or "" when no usable token
// is held. Callers needing freshness call FetchCSRFToken first.
func (c *Client) Token(sess *domain.Session) string {
	if validToken(sess.CSRFToken) {
		return sess.CSRFToken
	}
	return ""
}

// FetchCSRFToken issues the credentialed GET that makes the upstream set its
// CSRF cookie, and mirrors the token into the session record. Failures leave
// an empty token and are logged, never returned: a missing token is fatal
// only to the mutating calls that would need it.
func (c *Client) FetchCSRFToken(ctx context.Context, sess *domain.Session) string {
	req, err := c.newRequest(ctx, sess, http.MethodGet, "/api/csrf/", nil, nil)
	if err != nil {
		sess.CSRFToken = ""
		return ""
	}

	resp, err := c.do(req, sess)
	if err != nil {
		c.log.Warn().Err(err).Msg("csrf token fetch failed")
		metrics.CSRFFetchesTotal.WithLabelValues("error").Inc()
		sess.CSRFToken = ""
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("csrf token fetch rejected")
		metrics.CSRFFetchesTotal.WithLabelValues("rejected").Inc()
		sess.CSRFToken = ""
		return ""
	}

	token := sess.UpstreamCookies[csrfCookieName]
	if !validToken(token) {
		// Backend contract variant: token embedded in the JSON body instead.
		var body csrfResponse
		if raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes)); err == nil {
			if json.Unmarshal(raw, &body) == nil && validToken(body.CSRFToken) {
				token = body.CSRFToken
			}
		}
	}

	if !validToken(token) {
		c.log.Warn().Msg("csrf endpoint returned no usable token")
		metrics.CSRFFetchesTotal.WithLabelValues("empty").Inc()
		sess.CSRFToken = ""
		return ""
	}

	metrics.CSRFFetchesTotal.WithLabelValues("ok").Inc()
	sess.CSRFToken = token
	return token
}

// ensureToken returns a usable CSRF token, fetching one on demand. The error
// is always domain.ErrCSRFUnavailable so mutating callers can fail fast with
// a stable condition.
func (c *Client) ensureToken(ctx context.Context, sess *domain.Session) (string, error) {
	if token := c.Token(sess); token != "" {
		return token, nil
	}
	if token := c.FetchCSRFToken(ctx, sess); token != "" {
		return token, nil
	}
	return "", domain.ErrCSRFUnavailable
}
