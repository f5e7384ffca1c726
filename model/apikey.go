package model

const APIKeyType = "api_key" // also, memdb schema name

type APIKeyState string

const (
	APIKeyStateEnabled  APIKeyState = "ENABLED"
	APIKeyStateDisabled APIKeyState = "DISABLED"
)

// APIKey is a long-lived bearer credential owned by a User.
// Expiration is enforced at use time by the authentication path,
// enable/disable are independent toggles.
type APIKey struct {
	UUID       APIKeyUUID  `json:"uuid"` // PK
	UserUUID   UserUUID    `json:"user_uuid"`
	DomainUUID DomainUUID  `json:"domain_uuid"`
	Identifier string      `json:"identifier"`
	State      APIKeyState `json:"state"`
	ExpiredAt  UnixTime    `json:"expired_at"`
	Version    string      `json:"resource_version"`

	// Secret is the key material, shown once on creation and never listed
	Secret string `json:"secret,omitempty" sensitive:""`
}

func (k *APIKey) ObjType() string {
	return APIKeyType
}

func (k *APIKey) ObjId() string {
	return k.UUID
}
