package model

const TrustedAccountType = "trusted_account" // also, memdb schema name

// TrustedAccount is a delegated credential source shared across service
// accounts of one workspace.
type TrustedAccount struct {
	UUID          TrustedAccountUUID `json:"uuid"` // PK
	WorkspaceUUID WorkspaceUUID      `json:"workspace_uuid"`
	DomainUUID    DomainUUID         `json:"domain_uuid"`
	Identifier    string             `json:"identifier"`
	Provider      string             `json:"provider"`
	Version       string             `json:"resource_version"`

	Data map[string]interface{} `json:"data"`
}

func (ta *TrustedAccount) ObjType() string {
	return TrustedAccountType
}

func (ta *TrustedAccount) ObjId() string {
	return ta.UUID
}
