package model

import "strings"

const RoleObjectType = "role" // also, memdb schema name

type RoleType string

const (
	RoleTypeDomainAdmin     RoleType = "DOMAIN_ADMIN"
	RoleTypeWorkspaceOwner  RoleType = "WORKSPACE_OWNER"
	RoleTypeWorkspaceMember RoleType = "WORKSPACE_MEMBER"
)

// Role is a named permission bundle. RoleType determines the minimum
// scope at which the role is effective.
type Role struct {
	UUID        RoleUUID         `json:"uuid"` // PK
	Identifier  string           `json:"identifier"`
	Type        RoleType         `json:"role_type"`
	Permissions []PermissionName `json:"permissions"`
	Version     string           `json:"resource_version"`
}

func (r *Role) ObjType() string {
	return RoleObjectType
}

func (r *Role) ObjId() string {
	return r.UUID
}

// Grants reports whether the role's permissions cover the required
// permission, either exactly or through a trailing-asterisk wildcard
// ("identity:*" covers "identity:ServiceAccount.write").
func (r *Role) Grants(required PermissionName) bool {
	for _, p := range r.Permissions {
		if p == required {
			return true
		}
		if strings.HasSuffix(p, "*") && strings.HasPrefix(required, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}
