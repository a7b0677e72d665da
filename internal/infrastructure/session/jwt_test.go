package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newCodec(secret string) *CookieCodec {
	return &CookieCodec{
		Secret:     []byte(secret),
		CookieName: "hrportal_session",
		Lifetime:   time.Hour,
	}
}

func issueCookie(t *testing.T, codec *CookieCodec, sessionID string) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := codec.Issue(c, sessionID); err != nil {
		t.Fatalf("issue: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func readCookie(codec *CookieCodec, cookie *http.Cookie) (string, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := e.NewContext(req, httptest.NewRecorder())
	return codec.Read(c)
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := newCodec("secret-one")
	cookie := issueCookie(t, codec, "abc123")

	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	id, err := readCookie(codec, cookie)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if id != "abc123" {
		t.Fatalf("expected abc123, got %q", id)
	}
}

func TestCookieCodec_WrongSecretRejected(t *testing.T) {
	cookie := issueCookie(t, newCodec("secret-one"), "abc123")

	if _, err := readCookie(newCodec("secret-two"), cookie); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}

func TestCookieCodec_TamperedValueRejected(t *testing.T) {
	codec := newCodec("secret-one")
	cookie := issueCookie(t, codec, "abc123")
	cookie.Value = cookie.Value + "x"

	if _, err := readCookie(codec, cookie); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}

func TestCookieCodec_AbsentCookieRejected(t *testing.T) {
	codec := newCodec("secret-one")
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, err := codec.Read(c); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}

func TestCookieCodec_ExpiredCookieRejected(t *testing.T) {
	codec := newCodec("secret-one")
	codec.Lifetime = -time.Minute
	cookie := issueCookie(t, codec, "abc123")

	if _, err := readCookie(codec, cookie); err != ErrInvalidCookie {
		t.Fatalf("expected ErrInvalidCookie, got %v", err)
	}
}

func TestCookieCodec_ClearExpiresCookie(t *testing.T) {
	codec := newCodec("secret-one")
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	codec.Clear(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" || !cookies[0].Expires.Before(time.Now()) {
		t.Fatalf("cookie not expired: %+v", cookies[0])
	}
}
