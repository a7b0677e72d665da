package ports

import (
	"context"
	"net/url"

	"github.com/myhr/portal-gateway/internal/core/domain"
)

// LoginResult is the settled outcome of a credential POST. Auth failures are
// data, not Go errors: the flow always resolves to this shape.
type LoginResult struct {
	Success bool
	User    *domain.User
	Error   string
}

// ProxyResult is the typed result union every collaborator-endpoint call
// settles into. When OK is false, ErrorMessage holds the single normalized
// human-readable error string.
type ProxyResult struct {
	StatusCode   int
	ContentType  string
	Body         []byte
	OK           bool
	ErrorMessage string
}

// HRClient is the upstream HR API surface. Implementations own the CSRF
// token lifecycle and the cookie/session plumbing for each session record.
type HRClient interface {
	// FetchCSRFToken refreshes the mirrored upstream CSRF token. Returns the
	// new token, or "" when the upstream call failed. Never returns an error:
	// CSRF unavailability is non-fatal at this point and fatal only to the
	// mutating calls that would need it.
	FetchCSRFToken(ctx context.Context, sess *domain.Session) string

	// ResolveSession checks the upstream "current user" endpoint. A nil user
	// means not logged in, which is an expected steady state, not an error.
	ResolveSession(ctx context.Context, sess *domain.Session) *domain.User

	// Login posts credentials upstream and maps every failure shape to a
	// single user-facing string in the result.
	Login(ctx context.Context, sess *domain.Session, username, password string) LoginResult

	// Logout invalidates the upstream session. The returned error is for
	// logging only; callers clear local state regardless.
	Logout(ctx context.Context, sess *domain.Session) error

	// Forward relays one collaborator-endpoint call upstream with the
	// session's cookies and CSRF header attached. Mutating methods fail fast
	// with domain.ErrCSRFUnavailable when no valid token is held.
	Forward(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body []byte) (*ProxyResult, error)
}
