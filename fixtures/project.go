package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	ProjectUUID1 = "00000021-0000-0000-0000-000000000000"
	ProjectUUID2 = "00000022-0000-0000-0000-000000000000"
	ProjectUUID3 = "00000023-0000-0000-0000-000000000000"
	ProjectUUID4 = "00000024-0000-0000-0000-000000000000"
)

func Projects() []model.Project {
	return []model.Project{
		{
			UUID:          ProjectUUID1,
			WorkspaceUUID: WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Identifier:    "project1",
			Version:       "v1",
		},
		{
			UUID:          ProjectUUID2,
			WorkspaceUUID: WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Identifier:    "project2",
			Version:       "v1",
		},
		{
			UUID:          ProjectUUID3,
			WorkspaceUUID: WorkspaceUUID2,
			DomainUUID:    DomainUUID1,
			Identifier:    "project3",
			Version:       "v1",
		},
		{
			UUID:          ProjectUUID4,
			WorkspaceUUID: WorkspaceUUID3,
			DomainUUID:    DomainUUID2,
			Identifier:    "project4",
			Version:       "v1",
		},
	}
}
