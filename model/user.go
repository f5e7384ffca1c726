package model

const UserType = "user" // also, memdb schema name

type UserState string

const (
	UserStateEnabled  UserState = "ENABLED"
	UserStateDisabled UserState = "DISABLED"
)

type User struct {
	UUID           UserUUID   `json:"uuid"` // PK
	DomainUUID     DomainUUID `json:"domain_uuid"`
	Identifier     string     `json:"identifier"`
	FullIdentifier string     `json:"full_identifier"` // <identifier>@<domain_identifier>
	State          UserState  `json:"state"`
	Version        string     `json:"resource_version"`
}

func (u *User) ObjType() string {
	return UserType
}

func (u *User) ObjId() string {
	return u.UUID
}
