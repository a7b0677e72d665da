package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/myhr/portal-gateway/internal/api/middleware"
	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/ports"
	gwsession "github.com/myhr/portal-gateway/internal/infrastructure/session"
)

// AuthHandler handles the browser-facing auth surface: CSRF token issuance,
// session introspection, login, logout and registration passthrough.
type AuthHandler struct {
	auth         ports.AuthService
	client       ports.HRClient
	codec        *gwsession.CookieCodec
	cookieSecure bool
}

func NewAuthHandler(auth ports.AuthService, client ports.HRClient, codec *gwsession.CookieCodec, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, client: client, codec: codec, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CSRF issues the gateway's double-submit token: the same value lands in a
// script-readable cookie and in the JSON body, and mutating routes require
// the two to match.
//
// @Summary      Issue a CSRF token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/csrf/ [get]
func (h *AuthHandler) CSRF(c echo.Context) error {
	token := newCSRFToken()

	c.SetCookie(&http.Cookie{
		Name:     apimw.CSRFCookieName,
		Value:    token,
		Path:     "/",
		Secure:   h.cookieSecure,
		HttpOnly: false, // client script must read it back into the header
		SameSite: http.SameSiteLaxMode,
	})
	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set("Pragma", "no-cache")

	return c.JSON(http.StatusOK, map[string]string{"csrfToken": token})
}

// Me returns the resolved user for the current session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/user/me/ [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.IsAuthenticated || sess.User == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, userResponse{
		ID:       sess.User.ID,
		Username: sess.User.Username,
		Role:     string(sess.User.Role),
	})
}

// Login authenticates against the upstream HR API and records the returned
// user in the session on success.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.auth.Login(c.Request().Context(), sess, req.Username, req.Password)
	if !result.Success {
		return c.JSON(loginFailureStatus(result.Error), map[string]string{"error": result.Error})
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		Role:     string(result.User.Role),
	})
}

// loginFailureStatus picks the response code for a settled login failure.
func loginFailureStatus(msg string) int {
	switch msg {
	case domain.PendingApprovalDetail:
		return http.StatusForbidden
	case domain.ErrCSRFUnavailable.Error():
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

// Logout invalidates the upstream session best-effort, always clears local
// state, and forces navigation to the login view.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /api/logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.auth.Logout(c.Request().Context(), sess)
	h.codec.Clear(c)

	return c.Redirect(http.StatusSeeOther, "/login")
}

// Register relays a registration request upstream. New accounts start in the
// pending-approval state, so no local auth state changes here.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /api/register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.client.Forward(c.Request().Context(), sess, http.MethodPost, "/api/register/", nil, body)
	if err != nil {
		return err
	}
	if !result.OK {
		return c.JSON(result.StatusCode, map[string]string{"error": result.ErrorMessage})
	}
	return c.Blob(result.StatusCode, echo.MIMEApplicationJSON, result.Body)
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: no entropy available")
	}
	return hex.EncodeToString(b)
}
