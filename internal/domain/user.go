package domain

import "time"

// User is the principal stored by the identity backing store. The core reads
// it; only the user service mutates it.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Authorities returns the granted authorities derived from the user's roles.
func (u *User) Authorities() []string {
	out := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		out = append(out, role.Authority())
	}
	return out
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Enabled reports whether the account may authenticate.
func (u *User) Enabled() bool {
	return u.Active
}
