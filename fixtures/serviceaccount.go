package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	ServiceAccountUUID1 = "00000071-0000-0000-0000-000000000000"
	ServiceAccountUUID2 = "00000072-0000-0000-0000-000000000000" // managed
	ServiceAccountUUID3 = "00000073-0000-0000-0000-000000000000" // delegates to TrustedAccountUUID1
)

func ServiceAccounts() []model.ServiceAccount {
	return []model.ServiceAccount{
		{
			UUID:          ServiceAccountUUID1,
			ProjectUUID:   ProjectUUID1,
			WorkspaceUUID: WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Identifier:    "sa1",
			Provider:      "aws",
			Version:       "v1",
			Data:          map[string]interface{}{"access_key": "AKIA0000000000000001"},
			SecretData:    map[string]interface{}{"secret_key": "s3cr3t"},
		},
		{
			UUID:          ServiceAccountUUID2,
			ProjectUUID:   ProjectUUID1,
			WorkspaceUUID: WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Identifier:    "sa2-managed",
			Provider:      "aws",
			Version:       "v1",
			Data:          map[string]interface{}{"access_key": "AKIA0000000000000002"},
			Managed:       true,
		},
		{
			UUID:               ServiceAccountUUID3,
			ProjectUUID:        ProjectUUID2,
			WorkspaceUUID:      WorkspaceUUID1,
			DomainUUID:         DomainUUID1,
			Identifier:         "sa3",
			Provider:           "aws",
			Version:            "v1",
			Data:               map[string]interface{}{"access_key": "AKIA0000000000000003"},
			TrustedAccountUUID: TrustedAccountUUID1,
		},
	}
}
