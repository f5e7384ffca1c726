package model

const ProviderSchemaType = "provider_schema" // also, memdb schema name

type ResourceCategory string

const (
	CategoryServiceAccount ResourceCategory = "SERVICE_ACCOUNT"
	CategoryTrustedAccount ResourceCategory = "TRUSTED_ACCOUNT"
)

// ProviderSchema is a provider-registered schema for the data payload of
// one resource category within one domain. Content is an OpenAPI object
// schema in YAML or JSON.
type ProviderSchema struct {
	UUID       ProviderSchemaUUID `json:"uuid"` // PK
	Provider   string             `json:"provider"`
	DomainUUID DomainUUID         `json:"domain_uuid"`
	Category   ResourceCategory   `json:"category"`
	Content    string             `json:"content"`
	Version    string             `json:"resource_version"`
}

func (s *ProviderSchema) ObjType() string {
	return ProviderSchemaType
}

func (s *ProviderSchema) ObjId() string {
	return s.UUID
}
