package hrapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/myhr/portal-gateway/internal/api/metrics"
	"github.com/myhr/portal-gateway/internal/core/domain"
)

// meResponse is the raw payload of the upstream current-user endpoint.
type meResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	Role     string `json:"role"`
}

// ResolveSession checks the upstream session and returns the resolved user,
// or nil when not logged in. Session absence is an expected steady state:
// 401/403 and network failures all settle to nil without an error.
//
// Concurrent resolutions for the same session share one upstream call.
func (c *Client) ResolveSession(ctx context.Context, sess *domain.Session) *domain.User {
	v, _, _ := c.resolve.Do(sess.ID, func() (interface{}, error) {
		return c.resolveSession(ctx, sess), nil
	})
	user, _ := v.(*domain.User)
	return user
}

func (c *Client) resolveSession(ctx context.Context, sess *domain.Session) *domain.User {
	// Hard sequencing: the CSRF fetch must have settled before the session
	// check. Without a token the session GET is never issued.
	token := c.Token(sess)
	if token == "" {
		token = c.FetchCSRFToken(ctx, sess)
	}
	if token == "" {
		c.log.Debug().Msg("no csrf token, skipping session check")
		metrics.SessionResolutionsTotal.WithLabelValues("csrf_unavailable").Inc()
		return nil
	}

	req, err := c.newRequest(ctx, sess, http.MethodGet, "/api/user/me/", nil, nil)
	if err != nil {
		return nil
	}
	req.Header.Set(csrfHeaderName, token)

	resp, err := c.do(req, sess)
	if err != nil {
		c.log.Debug().Err(err).Msg("session check failed")
		metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", resp.StatusCode).Msg("no active upstream session")
		metrics.SessionResolutionsTotal.WithLabelValues("unauthenticated").Inc()
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil
	}
	var me meResponse
	if err := json.Unmarshal(raw, &me); err != nil {
		c.log.Warn().Err(err).Msg("unparseable current-user payload")
		metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
		return nil
	}

	role := domain.EffectiveRole(me.IsStaff, me.Role)
	if !role.Valid() {
		c.log.Warn().Str("role", me.Role).Msg("upstream returned unknown role")
		metrics.SessionResolutionsTotal.WithLabelValues("unknown_role").Inc()
		return nil
	}

	metrics.SessionResolutionsTotal.WithLabelValues("authenticated").Inc()
	return &domain.User{ID: me.ID, Username: me.Username, Role: role}
}
