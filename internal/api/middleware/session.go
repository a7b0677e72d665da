package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/ports"
	gwsession "github.com/myhr/portal-gateway/internal/infrastructure/session"
)

const sessionContextKey = "session"

// Session binds each request to a session record. First-time visitors get a
// fresh record plus a signed cookie; unresolved records are bootstrapped
// (CSRF fetch, then upstream session check) before the handler runs, so
// every downstream read sees settled auth state.
func Session(codec *gwsession.CookieCodec, store ports.SessionStore, auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var sess *domain.Session
			if id, err := codec.Read(c); err == nil {
				rec, err := store.Get(ctx, id)
				switch {
				case err == nil:
					sess = rec
				case errors.Is(err, domain.ErrSessionNotFound):
					// expired record, fall through to a fresh session
				default:
					log.Error().Err(err).Msg("session store unavailable")
					return echo.NewHTTPError(503, "session store unavailable")
				}
			}

			if sess == nil {
				sess = domain.NewSession(newSessionID())
				if err := codec.Issue(c, sess.ID); err != nil {
					return err
				}
			}

			if sess.LoadingAuth {
				auth.Bootstrap(ctx, sess)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFromContext returns the session record bound by the Session
// middleware, or nil when it did not run.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("session: no entropy available")
	}
	return hex.EncodeToString(b)
}
