package session

// Role is a coarse-grained permission label attached to a user. Roles are
// compared case-sensitively and exactly; unknown labels still participate
// in membership checks.
type Role = string

const (
	// RoleManager can administer the full catalogue plus staff accounts.
	RoleManager Role = "ROLE_MANAGER"
	// RoleStaff covers day-to-day room and booking operations.
	RoleStaff Role = "ROLE_STAFF"
	// RoleGuest is the read-mostly default for non-staff accounts.
	RoleGuest Role = "ROLE_GUEST"
)

// IsKnownRole checks if the role is one of the predefined Roomify roles.
func IsKnownRole(r Role) bool {
	switch r {
	case RoleManager, RoleStaff, RoleGuest:
		return true
	default:
		return false
	}
}

// KnownRoles returns all predefined roles in descending privilege order.
func KnownRoles() []Role {
	return []Role{
		RoleManager,
		RoleStaff,
		RoleGuest,
	}
}
