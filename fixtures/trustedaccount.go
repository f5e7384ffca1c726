package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	TrustedAccountUUID1 = "00000061-0000-0000-0000-000000000000" // workspace1
	TrustedAccountUUID2 = "00000062-0000-0000-0000-000000000000" // workspace2
)

func TrustedAccounts() []model.TrustedAccount {
	return []model.TrustedAccount{
		{
			UUID:          TrustedAccountUUID1,
			WorkspaceUUID: WorkspaceUUID1,
			DomainUUID:    DomainUUID1,
			Identifier:    "shared-aws",
			Provider:      "aws",
			Version:       "v1",
			Data:          map[string]interface{}{"account_id": "123456789012"},
		},
		{
			UUID:          TrustedAccountUUID2,
			WorkspaceUUID: WorkspaceUUID2,
			DomainUUID:    DomainUUID1,
			Identifier:    "shared-aws",
			Provider:      "aws",
			Version:       "v1",
			Data:          map[string]interface{}{"account_id": "210987654321"},
		},
	}
}
