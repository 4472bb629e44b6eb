package medclient

import "strings"

// Role is the user's application role. The set is closed: the backend only
// ever issues the three values below.
type Role string

const (
	// RoleAdmin manages the whole deployment
	RoleAdmin Role = "admin"
	// RoleDoctor is the practitioner role
	RoleDoctor Role = "doctor"
	// RolePatient is the default end-user role
	RolePatient Role = "patient"
)

const (
	// LoginPath is the entry point unauthenticated users are sent to.
	LoginPath = "/login"
	// RootPath is the application root, the fallback for unknown roles.
	RootPath = "/"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	default:
		return false
	}
}

// HomePath returns the dashboard path owned by the role. The mapping is
// total over the closed role set; anything else lands on the app root.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleDoctor:
		return "/doctor/dashboard"
	case RolePatient:
		return "/dashboard"
	default:
		return RootPath
	}
}

// ProfilePath returns the role-specific "who am I" endpoint. The patient
// endpoint doubles as the default for anything unrecognized.
func (r Role) ProfilePath() string {
	switch r {
	case RoleAdmin:
		return "/auth/admin/me"
	case RoleDoctor:
		return "/doctor/me"
	default:
		return "/auth/me"
	}
}

// ParseRole normalizes a raw role string and reports whether it is one of
// the known roles.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.IsValid()
}
