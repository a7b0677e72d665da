package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myhr/portal-gateway/internal/core/domain"
	"github.com/myhr/portal-gateway/internal/core/guard"
	"github.com/myhr/portal-gateway/internal/core/ports"
)

type stubHRClient struct {
	csrfToken    string
	resolvedUser *domain.User
	loginResult  ports.LoginResult
	logoutErr    error

	resolveCalls int
	logoutCalls  int
}

func (s *stubHRClient) FetchCSRFToken(_ context.Context, sess *domain.Session) string {
	sess.CSRFToken = s.csrfToken
	return s.csrfToken
}

func (s *stubHRClient) ResolveSession(_ context.Context, _ *domain.Session) *domain.User {
	s.resolveCalls++
	return s.resolvedUser
}

func (s *stubHRClient) Login(_ context.Context, _ *domain.Session, _, _ string) ports.LoginResult {
	return s.loginResult
}

func (s *stubHRClient) Logout(_ context.Context, _ *domain.Session) error {
	s.logoutCalls++
	return s.logoutErr
}

func (s *stubHRClient) Forward(_ context.Context, _ *domain.Session, _, _ string, _ url.Values, _ []byte) (*ports.ProxyResult, error) {
	return &ports.ProxyResult{StatusCode: 200, OK: true}, nil
}

type stubSessionStore struct {
	saved   map[string]*domain.Session
	deleted []string
	saveErr error
}

func newStubStore() *stubSessionStore {
	return &stubSessionStore{saved: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.saved[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestBootstrap_CSRFFailureSkipsSessionCheck(t *testing.T) {
	client := &stubHRClient{csrfToken: ""}
	store := newStubStore()
	svc := NewAuthService(client, store, zerolog.Nop())

	sess := domain.NewSession("b1")
	svc.Bootstrap(context.Background(), sess)

	if client.resolveCalls != 0 {
		t.Fatalf("session check must not run when CSRF fetch fails, got %d calls", client.resolveCalls)
	}
	if sess.IsAuthenticated {
		t.Fatalf("expected unauthenticated")
	}
	if sess.LoadingAuth {
		t.Fatalf("bootstrap must always settle LoadingAuth")
	}
	if _, ok := store.saved["b1"]; !ok {
		t.Fatalf("settled state must be persisted")
	}
}

func TestBootstrap_ResolvesExistingSession(t *testing.T) {
	client := &stubHRClient{
		csrfToken:    "tokenlongenough123",
		resolvedUser: &domain.User{ID: 3, Username: "pat", Role: domain.RoleAdmin},
	}
	store := newStubStore()
	svc := NewAuthService(client, store, zerolog.Nop())

	sess := domain.NewSession("b2")
	svc.Bootstrap(context.Background(), sess)

	if !sess.IsAuthenticated || sess.Role != domain.RoleAdmin {
		t.Fatalf("expected authenticated admin, got %+v", sess)
	}
	if sess.LoadingAuth {
		t.Fatalf("LoadingAuth must be false after bootstrap")
	}
}

func TestBootstrap_UnresolvedUserClearsIdentity(t *testing.T) {
	client := &stubHRClient{csrfToken: "tokenlongenough123", resolvedUser: nil}
	store := newStubStore()
	svc := NewAuthService(client, store, zerolog.Nop())

	sess := domain.NewSession("b3")
	svc.Bootstrap(context.Background(), sess)

	if sess.IsAuthenticated || sess.User != nil || sess.Role != "" {
		t.Fatalf("expected cleared identity, got %+v", sess)
	}
	if sess.CSRFToken == "" {
		t.Fatalf("CSRF token must survive a failed session check")
	}
}

func TestBootstrap_ResolvedSessionIsUntouched(t *testing.T) {
	client := &stubHRClient{csrfToken: "tokenlongenough123"}
	svc := NewAuthService(client, newStubStore(), zerolog.Nop())

	sess := domain.NewSession("b4")
	sess.Authenticate(&domain.User{ID: 1, Username: "erin", Role: domain.RoleEmployee})
	svc.Bootstrap(context.Background(), sess)

	if client.resolveCalls != 0 {
		t.Fatalf("already-resolved session must not trigger a resolve")
	}
	if !sess.IsAuthenticated {
		t.Fatalf("resolved session lost its identity")
	}
}

func TestLogin_SuccessAuthorizesGuardedRoute(t *testing.T) {
	client := &stubHRClient{loginResult: ports.LoginResult{
		Success: true,
		User:    &domain.User{ID: 5, Username: "erin", Role: domain.RoleEmployee},
	}}
	store := newStubStore()
	svc := NewAuthService(client, store, zerolog.Nop())

	sess := domain.NewSession("l1")
	sess.LoadingAuth = false
	result := svc.Login(context.Background(), sess, "erin", "pw")

	if !result.Success {
		t.Fatalf("expected success")
	}
	if !sess.IsAuthenticated || sess.User == nil || !sess.Role.Valid() {
		t.Fatalf("authenticated invariant violated: %+v", sess)
	}
	if d := guard.EvaluateSession(sess, sess.Role); d != guard.Authorized {
		t.Fatalf("guard on own role after login: got %s, want authorized", d)
	}
}

func TestLogin_FailureLeavesStateUnauthenticated(t *testing.T) {
	client := &stubHRClient{loginResult: ports.LoginResult{Success: false, Error: "Invalid username or password."}}
	svc := NewAuthService(client, newStubStore(), zerolog.Nop())

	sess := domain.NewSession("l2")
	sess.LoadingAuth = false
	result := svc.Login(context.Background(), sess, "erin", "wrong")

	if result.Success || sess.IsAuthenticated {
		t.Fatalf("failed login must not authenticate")
	}
}

func TestLogout_AlwaysClearsLocalState(t *testing.T) {
	for _, upstreamErr := range []error{nil, domain.ErrUpstreamUnavailable} {
		client := &stubHRClient{logoutErr: upstreamErr}
		store := newStubStore()
		svc := NewAuthService(client, store, zerolog.Nop())

		sess := domain.NewSession("lo1")
		sess.Authenticate(&domain.User{ID: 5, Username: "erin", Role: domain.RoleEmployee})
		sess.CSRFToken = "tokenlongenough123"
		sess.SetUpstreamCookie("sessionid", "abc")

		svc.Logout(context.Background(), sess)

		if sess.IsAuthenticated || sess.User != nil || sess.CSRFToken != "" || len(sess.UpstreamCookies) != 0 {
			t.Fatalf("logout (upstream err=%v) must clear everything: %+v", upstreamErr, sess)
		}
		if client.logoutCalls != 1 {
			t.Fatalf("upstream logout not attempted")
		}
		if len(store.deleted) != 1 || store.deleted[0] != "lo1" {
			t.Fatalf("session record not deleted: %v", store.deleted)
		}
	}
}
