package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("user")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("moderator")
	assert.False(t, ok)
}

func TestCaller(t *testing.T) {
	admin := Caller{ID: "a1", Roles: NewRoleSet(RoleUser, RoleAdmin)}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.Authenticated())
	assert.True(t, admin.Roles.HasAny(RoleAdmin))

	user := Caller{ID: "u1", Roles: NewRoleSet(RoleUser)}
	assert.False(t, user.IsAdmin())
	assert.False(t, user.Roles.HasAny(RoleAdmin))

	var anon Caller
	assert.False(t, anon.Authenticated())
	assert.False(t, anon.IsAdmin())
}
