package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	RoleUUID1 = "00000041-0000-0000-0000-000000000000" // workspace member, read+write
	RoleUUID2 = "00000042-0000-0000-0000-000000000000" // workspace owner, wildcard
	RoleUUID3 = "00000043-0000-0000-0000-000000000000" // domain admin, wildcard
	RoleUUID4 = "00000044-0000-0000-0000-000000000000" // workspace member, read only
)

func Roles() []model.Role {
	return []model.Role{
		{
			UUID:       RoleUUID1,
			Identifier: "workspace-member",
			Type:       model.RoleTypeWorkspaceMember,
			Permissions: []model.PermissionName{
				"identity:ServiceAccount.write",
				"identity:ServiceAccount.read",
			},
			Version: "v1",
		},
		{
			UUID:        RoleUUID2,
			Identifier:  "workspace-owner",
			Type:        model.RoleTypeWorkspaceOwner,
			Permissions: []model.PermissionName{"identity:*"},
			Version:     "v1",
		},
		{
			UUID:        RoleUUID3,
			Identifier:  "domain-admin",
			Type:        model.RoleTypeDomainAdmin,
			Permissions: []model.PermissionName{"identity:*"},
			Version:     "v1",
		},
		{
			UUID:        RoleUUID4,
			Identifier:  "workspace-viewer",
			Type:        model.RoleTypeWorkspaceMember,
			Permissions: []model.PermissionName{"identity:ServiceAccount.read"},
			Version:     "v1",
		},
	}
}
