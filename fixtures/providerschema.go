package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	ProviderSchemaUUID1 = "00000081-0000-0000-0000-000000000000"
	ProviderSchemaUUID2 = "00000082-0000-0000-0000-000000000000"
)

const AWSServiceAccountSchema = `
type: object
properties:
  access_key:
    type: string
  region:
    type: string
required:
- access_key
`

const AWSTrustedAccountSchema = `
type: object
properties:
  account_id:
    type: string
  external_id:
    type: string
required:
- account_id
`

func ProviderSchemas() []model.ProviderSchema {
	return []model.ProviderSchema{
		{
			UUID:       ProviderSchemaUUID1,
			Provider:   "aws",
			DomainUUID: DomainUUID1,
			Category:   model.CategoryServiceAccount,
			Content:    AWSServiceAccountSchema,
			Version:    "v1",
		},
		{
			UUID:       ProviderSchemaUUID2,
			Provider:   "aws",
			DomainUUID: DomainUUID1,
			Category:   model.CategoryTrustedAccount,
			Content:    AWSTrustedAccountSchema,
			Version:    "v1",
		},
	}
}
