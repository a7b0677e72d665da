package ports

import (
	"context"

	"github.com/myhr/portal-gateway/internal/core/domain"
)

// AuthService is the narrow mutation API over session auth state. No other
// component writes to a session record.
type AuthService interface {
	// Bootstrap runs the mount-time sequence: CSRF fetch, then session
	// resolution, in that order. It always leaves LoadingAuth false.
	Bootstrap(ctx context.Context, sess *domain.Session)

	// Login performs the credential POST and, on success, records the
	// returned user directly (no re-fetch).
	Login(ctx context.Context, sess *domain.Session, username, password string) LoginResult

	// Logout best-effort invalidates the upstream session and always ends in
	// the local unauthenticated baseline.
	Logout(ctx context.Context, sess *domain.Session)
}
