// Package session implements the gateway's own browser session cookie: a
// JWT-signed wrapper around the session record ID. The record itself lives
// in Redis; the cookie only proves which record belongs to the browser.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrInvalidCookie = errors.New("session cookie was invalid")

var signingMethod = jwt.SigningMethodHS256

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the gateway session cookie.
type CookieCodec struct {
	Secret       []byte
	CookieName   string
	CookieSecure bool
	Lifetime     time.Duration
}

// Issue signs a cookie binding the browser to the given session record.
func (cc *CookieCodec) Issue(c echo.Context, sessionID string) error {
	expiry := time.Now().Add(cc.Lifetime)

	claims := &cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(cc.Secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     cc.CookieName,
		Value:    signed,
		Path:     "/",
		Secure:   cc.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiry,
	})
	return nil
}

// Read returns the session record ID bound to the request, or
// ErrInvalidCookie when the cookie is absent, expired or tampered with.
func (cc *CookieCodec) Read(c echo.Context) (string, error) {
	cookie, err := c.Cookie(cc.CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrInvalidCookie
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Alg()}))
	claims := new(cookieClaims)

	token, err := parser.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (interface{}, error) {
		return cc.Secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidCookie
	}

	return claims.SessionID, nil
}

// Clear expires the cookie.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}
