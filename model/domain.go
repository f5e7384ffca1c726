package model

const DomainType = "domain" // also, memdb schema name

// Domain is the top-level tenant boundary, root of all scope containment.
type Domain struct {
	UUID       DomainUUID `json:"uuid"` // PK
	Identifier string     `json:"identifier"`
	Version    string     `json:"resource_version"`
}

func (d *Domain) ObjType() string {
	return DomainType
}

func (d *Domain) ObjId() string {
	return d.UUID
}
