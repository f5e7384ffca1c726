package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	DomainUUID1 = "00000001-0000-0000-0000-000000000000"
	DomainUUID2 = "00000002-0000-0000-0000-000000000000"
)

func Domains() []model.Domain {
	return []model.Domain{
		{
			UUID:       DomainUUID1,
			Identifier: "domain1",
			Version:    "v1",
		},
		{
			UUID:       DomainUUID2,
			Identifier: "domain2",
			Version:    "v1",
		},
	}
}
