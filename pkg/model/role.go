package model

import "golang.org/x/exp/slices"

// Role of a user within a group. Roles form a closed set, there is no transition graph beyond
// "only an admin may change roles".
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleMember    Role = "MEMBER"
)

var roles = []Role{RoleAdmin, RoleModerator, RoleMember}

func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

// Permission names an administrative action on a group.
type Permission string

const (
	PermissionUpdateGroup   Permission = "group:update"
	PermissionDeleteGroup   Permission = "group:delete"
	PermissionManageRoles   Permission = "group:manage-roles"
	PermissionRemoveMembers Permission = "group:remove-members"
)

// rolePermissions is the single permission matrix consulted for every role gated operation.
// Operations not listed here (joining, leaving, posting) are open to any member.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermissionUpdateGroup:   true,
		PermissionDeleteGroup:   true,
		PermissionManageRoles:   true,
		PermissionRemoveMembers: true,
	},
	RoleModerator: {
		PermissionUpdateGroup: true,
	},
	RoleMember: {},
}

func (r Role) Can(permission Permission) bool {
	return rolePermissions[r][permission]
}
