package domain

import "time"

// Session is the per-browser auth state record, the single source of truth
// for authentication. It is owned by the auth service: only Bootstrap, login
// and logout mutate it. Everything else reads.
type Session struct {
	ID              string            `json:"id"`
	User            *User             `json:"user,omitempty"`
	IsAuthenticated bool              `json:"is_authenticated"`
	Role            Role              `json:"role,omitempty"`
	LoadingAuth     bool              `json:"loading_auth"`
	CSRFToken       string            `json:"csrf_token,omitempty"`
	UpstreamCookies map[string]string `json:"upstream_cookies,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewSession returns a fresh, unresolved session in the loading state.
func NewSession(id string) *Session {
	return &Session{
		ID:              id,
		LoadingAuth:     true,
		UpstreamCookies: make(map[string]string),
		CreatedAt:       time.Now().UTC(),
	}
}

// Authenticate records a resolved user. Keeps the invariant
// IsAuthenticated == (User != nil && Role is valid).
func (s *Session) Authenticate(u *User) {
	s.User = u
	s.Role = u.Role
	s.IsAuthenticated = u != nil && u.Role.Valid()
	s.LoadingAuth = false
}

// ClearIdentity resets the auth fields to the unauthenticated baseline while
// keeping the CSRF token and upstream cookies, so a failed session check can
// still be followed by a login POST without another token fetch.
func (s *Session) ClearIdentity() {
	s.User = nil
	s.Role = ""
	s.IsAuthenticated = false
	s.LoadingAuth = false
}

// Clear resets the session completely. Used on logout, where the upstream
// cookies and the mirrored CSRF token are dropped with the identity.
func (s *Session) Clear() {
	s.ClearIdentity()
	s.CSRFToken = ""
	s.UpstreamCookies = make(map[string]string)
}

// SetUpstreamCookie mirrors one upstream Set-Cookie value into the record.
func (s *Session) SetUpstreamCookie(name, value string) {
	if s.UpstreamCookies == nil {
		s.UpstreamCookies = make(map[string]string)
	}
	s.UpstreamCookies[name] = value
}
