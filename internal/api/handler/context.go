package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/myhr/portal-gateway/internal/api/middleware"
	"github.com/myhr/portal-gateway/internal/core/domain"
)

// maxRequestBytes caps bodies relayed upstream.
const maxRequestBytes = 1 << 20

// ctxSession extracts the session record bound by the Session middleware and
// fast-fails when it is missing; absence means the middleware did not run on
// this route, which is a wiring bug, not a user error.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := apimw.SessionFromContext(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "no session bound to request")
	}
	return sess, nil
}
