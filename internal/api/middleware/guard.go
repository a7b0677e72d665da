package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myhr/portal-gateway/internal/api/metrics"
	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/guard"
)

// Guard protects a route group with the pure guard evaluation. The decision
// is computed first, then acted on here: redirects are issued by this
// middleware reading the decision, never by the auth state itself.
//
// An empty role list admits any authenticated user.
func Guard(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromContext(c)

			decision := guard.EvaluateSession(sess, required...)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case guard.Authorized:
				return next(c)
			case guard.Loading:
				// Auth state still resolving; tell the client to retry
				// rather than redirecting it anywhere.
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			default:
				var role domain.Role
				if sess != nil {
					role = sess.Role
				}
				return c.Redirect(http.StatusSeeOther, guard.RedirectTarget(decision, role))
			}
		}
	}
}
