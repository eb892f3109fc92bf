package domain

import "strings"

type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole maps a role claim onto a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "admin":
		return RoleAdmin, true
	default:
		return 0, false
	}
}

type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	return rs
}

func (rs RoleSet) Has(r Role) bool {
	_, ok := rs[r]
	return ok
}

// HasAny reports whether at least one of roles is present.
func (rs RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Caller is the verified identity the boundary hands to the service.
// An empty ID means the request is unauthenticated.
type Caller struct {
	ID    string
	Roles RoleSet
}

func (c Caller) IsAdmin() bool {
	return c.Roles.Has(RoleAdmin)
}

func (c Caller) Authenticated() bool {
	return c.ID != ""
}
