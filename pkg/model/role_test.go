package model_test

import (
	"testing"

	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, model.RoleAdmin.Valid())
	require.True(t, model.RoleModerator.Valid())
	require.True(t, model.RoleMember.Valid())
	require.False(t, model.Role("OWNER").Valid())
	require.False(t, model.Role("").Valid())
	require.False(t, model.Role("admin").Valid())
}

func TestRolePermissionMatrix(t *testing.T) {
	permissions := []model.Permission{
		model.PermissionUpdateGroup,
		model.PermissionDeleteGroup,
		model.PermissionManageRoles,
		model.PermissionRemoveMembers,
	}

	for _, permission := range permissions {
		assert.True(t, model.RoleAdmin.Can(permission), "admin should hold %q", permission)
		assert.False(t, model.RoleMember.Can(permission), "member should not hold %q", permission)
	}

	assert.True(t, model.RoleModerator.Can(model.PermissionUpdateGroup))
	assert.False(t, model.RoleModerator.Can(model.PermissionDeleteGroup))
	assert.False(t, model.RoleModerator.Can(model.PermissionManageRoles))
	assert.False(t, model.RoleModerator.Can(model.PermissionRemoveMembers))
}
