// Package guard implements the route access decision as a pure function of
// the auth state and a route's role requirements. Navigation is performed by
// the caller reading the decision, never from inside the guard, so redirect
// loops cannot originate here.
package guard

import "github.com/myhr/portal-gateway/internal/core/domain"

// Decision is the outcome of evaluating one protected route render.
type Decision int

const (
	// Loading means auth state is still being resolved; render a neutral
	// loading indicator, never a redirect.
	Loading Decision = iota
	// Authorized means the requested content may be rendered.
	Authorized
	// RedirectLogin sends the user to the login view.
	RedirectLogin
	// RedirectHome sends an authenticated user lacking the required role to
	// their own role's dashboard.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Authorized:
		return "authorized"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Evaluate applies the guard state machine:
//
//	loadingAuth            → Loading
//	!isAuthenticated       → RedirectLogin
//	role not in required   → RedirectHome (role-specific dashboard)
//	otherwise              → Authorized
//
// An empty required list means any authenticated user is allowed.
func Evaluate(loadingAuth, isAuthenticated bool, role domain.Role, required []domain.Role) Decision {
	if loadingAuth {
		return Loading
	}
	if !isAuthenticated {
		return RedirectLogin
	}
	if len(required) > 0 && !contains(required, role) {
		return RedirectHome
	}
	return Authorized
}

// EvaluateSession is Evaluate applied to a session record.
func EvaluateSession(sess *domain.Session, required ...domain.Role) Decision {
	if sess == nil {
		return RedirectLogin
	}
	return Evaluate(sess.LoadingAuth, sess.IsAuthenticated, sess.Role, required)
}

// RedirectTarget resolves a redirect decision to its path. Authorized and
// Loading have no target and return "".
func RedirectTarget(d Decision, role domain.Role) string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectHome:
		return role.HomePath()
	default:
		return ""
	}
}

func contains(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
