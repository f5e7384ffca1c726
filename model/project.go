package model

const ProjectType = "project" // also, memdb schema name

type Project struct {
	UUID          ProjectUUID   `json:"uuid"` // PK
	WorkspaceUUID WorkspaceUUID `json:"workspace_uuid"`
	DomainUUID    DomainUUID    `json:"domain_uuid"`
	Identifier    string        `json:"identifier"`
	Version       string        `json:"resource_version"`
}

func (p *Project) ObjType() string {
	return ProjectType
}

func (p *Project) ObjId() string {
	return p.UUID
}
