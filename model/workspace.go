package model

const WorkspaceType = "workspace" // also, memdb schema name

type Workspace struct {
	UUID       WorkspaceUUID `json:"uuid"` // PK
	DomainUUID DomainUUID    `json:"domain_uuid"`
	Identifier string        `json:"identifier"`
	Version    string        `json:"resource_version"`
}

func (w *Workspace) ObjType() string {
	return WorkspaceType
}

func (w *Workspace) ObjId() string {
	return w.UUID
}
