package domain

// Role enumerates the authorization roles a user may hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Authority returns the granted-authority form of the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// ParseRole maps a stored string back to a Role; unknown values are kept
// verbatim so a round-trip through the database never loses information.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return Role(s)
	}
}
