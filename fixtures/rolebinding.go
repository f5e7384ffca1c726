package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	RoleBindingUUID1 = "00000051-0000-0000-0000-000000000000"
	RoleBindingUUID2 = "00000052-0000-0000-0000-000000000000"
	RoleBindingUUID3 = "00000053-0000-0000-0000-000000000000"
)

func RoleBindings() []model.RoleBinding {
	return []model.RoleBinding{
		// user1 is a member of workspace1
		{
			UUID:          RoleBindingUUID1,
			PrincipalUUID: UserUUID1,
			RoleUUID:      RoleUUID1,
			ScopeType:     model.ScopeWorkspace,
			ScopeUUID:     WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Version:       "v1",
		},
		// user2 administers domain1
		{
			UUID:          RoleBindingUUID2,
			PrincipalUUID: UserUUID2,
			RoleUUID:      RoleUUID3,
			ScopeType:     model.ScopeDomain,
			ScopeUUID:     DomainUUID1,
			DomainUUID:    DomainUUID1,
			Version:       "v1",
		},
		// user3 owns workspace3 of domain2
		{
			UUID:          RoleBindingUUID3,
			PrincipalUUID: UserUUID3,
			RoleUUID:      RoleUUID2,
			ScopeType:     model.ScopeWorkspace,
			ScopeUUID:     WorkspaceUUID3,
			DomainUUID:    DomainUUID2,
			Version:       "v1",
		},
	}
}
