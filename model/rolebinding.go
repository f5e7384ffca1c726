package model

const RoleBindingType = "role_binding" // also, memdb schema name

// RoleBinding grants a Role to a principal at a scope. One binding per
// (principal, role, scope) is enforced by the store.
type RoleBinding struct {
	UUID          RoleBindingUUID `json:"uuid"` // PK
	PrincipalUUID PrincipalUUID   `json:"principal_uuid"`
	RoleUUID      RoleUUID        `json:"role_uuid"`
	ScopeType     ScopeType       `json:"scope_type"`
	ScopeUUID     string          `json:"scope_uuid"`
	DomainUUID    DomainUUID      `json:"domain_uuid"`
	Version       string          `json:"resource_version"`
}

func (rb *RoleBinding) ObjType() string {
	return RoleBindingType
}

func (rb *RoleBinding) ObjId() string {
	return rb.UUID
}

func (rb *RoleBinding) Scope() Scope {
	return Scope{Type: rb.ScopeType, UUID: rb.ScopeUUID}
}
