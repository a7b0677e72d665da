package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func csrfRequest(t *testing.T, method, headerToken, cookieToken string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/login/", nil)
	if headerToken != "" {
		req.Header.Set(CSRFHeaderName, headerToken)
	}
	if cookieToken != "" {
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: cookieToken})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return rec, CSRF()(next)(c)
}

func TestCSRF_MatchingTokensPass(t *testing.T) {
	rec, err := csrfRequest(t, http.MethodPost, "tok123", "tok123")
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCSRF_ReadsPassWithoutToken(t *testing.T) {
	_, err := csrfRequest(t, http.MethodGet, "", "")
	if err != nil {
		t.Fatalf("GET must pass without tokens, got %v", err)
	}
}

func TestCSRF_MissingHeaderForbidden(t *testing.T) {
	_, err := csrfRequest(t, http.MethodPost, "", "tok123")
	assertForbidden(t, err)
}

func TestCSRF_MissingCookieForbidden(t *testing.T) {
	_, err := csrfRequest(t, http.MethodPost, "tok123", "")
	assertForbidden(t, err)
}

func TestCSRF_MismatchForbidden(t *testing.T) {
	_, err := csrfRequest(t, http.MethodDelete, "tok123", "other456")
	assertForbidden(t, err)
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", he.Code)
	}
}
