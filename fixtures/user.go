package fixtures

import (
	"github.com/flant/identity-core/model"
)

const (
	UserUUID1 = "00000031-0000-0000-0000-000000000000"
	UserUUID2 = "00000032-0000-0000-0000-000000000000"
	UserUUID3 = "00000033-0000-0000-0000-000000000000"
)

func Users() []model.User {
	return []model.User{
		{
			UUID:           UserUUID1,
			DomainUUID:     DomainUUID1,
			Identifier:     "user1",
			FullIdentifier: "user1@domain1",
			State:          model.UserStateEnabled,
			Version:        "v1",
		},
		{
			UUID:           UserUUID2,
			DomainUUID:     DomainUUID1,
			Identifier:     "user2",
			FullIdentifier: "user2@domain1",
			State:          model.UserStateEnabled,
			Version:        "v1",
		},
		{
			UUID:           UserUUID3,
			DomainUUID:     DomainUUID2,
			Identifier:     "user3",
			FullIdentifier: "user3@domain2",
			State:          model.UserStateEnabled,
			Version:        "v1",
		},
	}
}
