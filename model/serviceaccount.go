package model

const ServiceAccountType = "service_account" // also, memdb schema name

// ServiceAccount is a non-human credential holder bound to a project.
// Data must conform to the provider schema registered for the
// SERVICE_ACCOUNT category in the owning domain.
type ServiceAccount struct {
	UUID          ServiceAccountUUID `json:"uuid"` // PK
	ProjectUUID   ProjectUUID        `json:"project_uuid"`
	WorkspaceUUID WorkspaceUUID      `json:"workspace_uuid"`
	DomainUUID    DomainUUID         `json:"domain_uuid"`
	Identifier    string             `json:"identifier"`
	Provider      string             `json:"provider"`
	Version       string             `json:"resource_version"`

	Data map[string]interface{} `json:"data"`
	Tags map[string]string      `json:"tags,omitempty"`

	// TrustedAccountUUID, when set, delegates secret data to a shared
	// trusted account in the same workspace
	TrustedAccountUUID TrustedAccountUUID `json:"trusted_account_uuid,omitempty"`

	SecretData map[string]interface{} `json:"secret_data,omitempty" sensitive:""`

	// Managed marks a system-provisioned account guarded by an external
	// dependency (e.g. a schedule); mutations are rejected until cleared
	Managed bool `json:"managed"`
}

func (sa *ServiceAccount) ObjType() string {
	return ServiceAccountType
}

func (sa *ServiceAccount) ObjId() string {
	return sa.UUID
}
