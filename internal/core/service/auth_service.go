package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/myhr/portal-gateway/internal/api/metrics"
	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/ports"
)

// AuthService implements the narrow mutation API over session auth state:
// bootstrap, login, logout. It is the only writer of session records.
type AuthService struct {
	client ports.HRClient
	store  ports.SessionStore
	log    zerolog.Logger
}

func NewAuthService(client ports.HRClient, store ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{client: client, store: store, log: log}
}

var _ ports.AuthService = (*AuthService)(nil)

// Bootstrap runs the mount-time sequence for an unresolved session: CSRF
// fetch first, then the session check, a hard ordering. Both steps settle
// into state rather than errors, and LoadingAuth is always false afterwards.
// Already-resolved sessions are left untouched.
func (s *AuthService) Bootstrap(ctx context.Context, sess *domain.Session) {
	if !sess.LoadingAuth {
		return
	}

	if token := s.client.FetchCSRFToken(ctx, sess); token == "" {
		s.log.Warn().Str("session_id", sess.ID).Msg("csrf fetch failed, skipping session check")
		sess.ClearIdentity()
		s.persist(ctx, sess)
		return
	}

	if user := s.client.ResolveSession(ctx, sess); user != nil {
		sess.Authenticate(user)
	} else {
		sess.ClearIdentity()
	}
	s.persist(ctx, sess)
}

// Login posts credentials upstream and, on success, trusts the login
// response directly: the returned user is recorded without a re-fetch.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, username, password string) ports.LoginResult {
	result := s.client.Login(ctx, sess, username, password)
	if result.Success {
		sess.Authenticate(result.User)
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		s.log.Info().Str("username", result.User.Username).Str("role", string(result.User.Role)).Msg("login succeeded")
	} else {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
	}
	s.persist(ctx, sess)
	return result
}

// Logout best-effort invalidates the upstream session and always ends in the
// local unauthenticated baseline, even when the upstream call fails. Leaving
// the client in an authenticated-looking state with a dead upstream session
// would strand the user.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) {
	if err := s.client.Logout(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("upstream logout failed, clearing local state anyway")
	}
	sess.Clear()
	if err := s.store.Delete(ctx, sess.ID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to delete session record")
	}
}

func (s *AuthService) persist(ctx context.Context, sess *domain.Session) {
	if err := s.store.Save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to persist session record")
	}
}
