package domain

import "errors"

var ErrCSRFUnavailable = errors.New("CSRF token not available")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")
var ErrUpstreamUnavailable = errors.New("HR API unavailable")

// PendingApprovalDetail is the exact upstream detail string returned for
// accounts awaiting administrator approval. Matched verbatim so the login
// flow can surface the dedicated message instead of a generic credential error.
const PendingApprovalDetail = "Your account is pending approval by an administrator."
