package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CSRFCookieName is the browser-readable cookie carrying the gateway's
// double-submit token. Client script mirrors it into the request header.
const CSRFCookieName = "csrftoken"

// CSRFHeaderName is the header the double-submit token must arrive in.
const CSRFHeaderName = "X-CSRFToken"

// CSRF enforces double-submit token protection on state-changing requests
// (POST, PUT, PATCH, DELETE): the X-CSRFToken header must match the
// csrftoken cookie exactly. Reads pass through untouched.
func CSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				return next(c)
			}

			header := c.Request().Header.Get(CSRFHeaderName)
			if header == "" {
				return echo.NewHTTPError(http.StatusForbidden, "CSRF token missing")
			}

			cookie, err := c.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusForbidden, "CSRF cookie missing")
			}

			if subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "CSRF token mismatch")
			}

			return next(c)
		}
	}
}
