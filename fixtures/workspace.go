package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	WorkspaceUUID1 = "00000011-0000-0000-0000-000000000000"
	WorkspaceUUID2 = "00000012-0000-0000-0000-000000000000"
	WorkspaceUUID3 = "00000013-0000-0000-0000-000000000000"
)

func Workspaces() []model.Workspace {
	return []model.Workspace{
		{
			UUID:       WorkspaceUUID1,
			DomainUUID: DomainUUID1,
			Identifier: "workspace1",
			Version:    "v1",
		},
		{
			UUID:       WorkspaceUUID2,
			DomainUUID: DomainUUID1,
			Identifier: "workspace2",
			Version:    "v1",
		},
		{
			UUID:       WorkspaceUUID3,
			DomainUUID: DomainUUID2,
			Identifier: "workspace3",
			Version:    "v1",
		},
	}
}
