package domain

import "testing"

func TestEffectiveRole(t *testing.T) {
	tests := []struct {
		isStaff bool
		raw     string
		want    Role
	}{
		{true, "employee", RoleAdmin},
		{true, "", RoleAdmin},
		{false, "employee", RoleEmployee},
		{false, "admin", RoleAdmin},
		{false, "manager", Role("manager")},
	}
	for _, tc := range tests {
		if got := EffectiveRole(tc.isStaff, tc.raw); got != tc.want {
			t.Fatalf("EffectiveRole(%v, %q) = %q, want %q", tc.isStaff, tc.raw, got, tc.want)
		}
	}
	if EffectiveRole(false, "manager").Valid() {
		t.Fatalf("unknown role must not validate")
	}
}

func TestSession_AuthenticateInvariant(t *testing.T) {
	sess := NewSession("d1")
	if !sess.LoadingAuth {
		t.Fatalf("fresh session must start loading")
	}

	sess.Authenticate(&User{ID: 1, Username: "pat", Role: RoleAdmin})
	if !sess.IsAuthenticated || sess.User == nil || !sess.Role.Valid() {
		t.Fatalf("invariant violated after Authenticate: %+v", sess)
	}

	sess.Authenticate(&User{ID: 2, Username: "ghost", Role: Role("manager")})
	if sess.IsAuthenticated {
		t.Fatalf("invalid role must not authenticate")
	}
}

func TestSession_ClearIdentityKeepsCSRFToken(t *testing.T) {
	sess := NewSession("d2")
	sess.CSRFToken = "tokenlongenough123"
	sess.SetUpstreamCookie("csrftoken", "tokenlongenough123")
	sess.Authenticate(&User{ID: 1, Username: "pat", Role: RoleAdmin})

	sess.ClearIdentity()
	if sess.IsAuthenticated || sess.User != nil || sess.Role != "" || sess.LoadingAuth {
		t.Fatalf("identity not cleared: %+v", sess)
	}
	if sess.CSRFToken == "" || len(sess.UpstreamCookies) == 0 {
		t.Fatalf("ClearIdentity must keep the token and cookies")
	}

	sess.Clear()
	if sess.CSRFToken != "" || len(sess.UpstreamCookies) != 0 {
		t.Fatalf("Clear must drop the token and cookies")
	}
}
