package hrapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/ports"
)

const (
	genericLoginError = "Invalid username or password."
	networkLoginError = "Network error during login. Please try again."
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
	Role     string `json:"role"`
}

// loginErrorBody covers the upstream failure shapes: a detail string or a
// non_field_errors list.
type loginErrorBody struct {
	Detail         string   `json:"detail"`
	NonFieldErrors []string `json:"non_field_errors"`
}

// Login posts credentials upstream. Every outcome settles into a
// ports.LoginResult; auth failures are never surfaced as Go errors.
func (c *Client) Login(ctx context.Context, sess *domain.Session, username, password string) ports.LoginResult {
	token, err := c.ensureToken(ctx, sess)
	if err != nil {
		return ports.LoginResult{Error: domain.ErrCSRFUnavailable.Error()}
	}

	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return ports.LoginResult{Error: genericLoginError}
	}

	req, err := c.newRequest(ctx, sess, http.MethodPost, "/api/login/", nil, body)
	if err != nil {
		return ports.LoginResult{Error: genericLoginError}
	}
	req.Header.Set(csrfHeaderName, token)

	resp, err := c.do(req, sess)
	if err != nil {
		c.log.Warn().Err(err).Str("username", username).Msg("login request failed")
		return ports.LoginResult{Error: networkLoginError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.LoginResult{Error: networkLoginError}
	}

	if resp.StatusCode == http.StatusOK {
		var lr loginResponse
		if err := json.Unmarshal(raw, &lr); err != nil {
			c.log.Error().Err(err).Msg("unparseable login payload")
			return ports.LoginResult{Error: genericLoginError}
		}
		role := domain.EffectiveRole(lr.IsStaff, lr.Role)
		if !role.Valid() {
			c.log.Error().Str("role", lr.Role).Msg("login returned unknown role")
			return ports.LoginResult{Error: genericLoginError}
		}
		return ports.LoginResult{
			Success: true,
			User:    &domain.User{ID: lr.ID, Username: lr.Username, Role: role},
		}
	}

	return ports.LoginResult{Error: loginErrorMessage(resp.StatusCode, raw)}
}

// loginErrorMessage maps upstream failure payloads to a single user-facing
// string. The pending-approval detail is passed through verbatim so the UI
// can special-case it.
func loginErrorMessage(status int, raw []byte) string {
	var body loginErrorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if status == http.StatusForbidden && body.Detail == domain.PendingApprovalDetail {
			return body.Detail
		}
		if body.Detail != "" {
			return body.Detail
		}
		if len(body.NonFieldErrors) > 0 {
			return body.NonFieldErrors[0]
		}
	}
	return genericLoginError
}

// Logout invalidates the upstream session. Errors are returned for logging
// only: callers always clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context, sess *domain.Session) error {
	token, err := c.ensureToken(ctx, sess)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, sess, http.MethodPost, "/api/logout/", nil, nil)
	if err != nil {
		return err
	}
	req.Header.Set(csrfHeaderName, token)

	resp, err := c.do(req, sess)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("logout: upstream status %d", resp.StatusCode)
	}
	return nil
}
