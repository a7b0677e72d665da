package domain

// Role drives route access and UI branching. The two roles are mutually
// exclusive capability sets, there is no hierarchy.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// HomePath returns the dashboard path a user of this role lands on.
// Unknown roles fall back to the login view.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleEmployee:
		return "/employee-dashboard"
	default:
		return "/login"
	}
}

// User models an authenticated actor as resolved from the upstream HR API.
// Role is the effective role: upstream accounts flagged is_staff are admins
// regardless of their raw role field.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// EffectiveRole computes the role the rest of the system sees from the raw
// upstream payload fields.
func EffectiveRole(isStaff bool, rawRole string) Role {
	if isStaff {
		return RoleAdmin
	}
	return Role(rawRole)
}
