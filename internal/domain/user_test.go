package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleAdminTier(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AdminTier())
	assert.True(t, RoleAdmin.AdminTier())
	assert.False(t, RoleUser.AdminTier())
	assert.False(t, Role("owner").AdminTier())
}
