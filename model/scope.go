package model

type ScopeType string

const (
	ScopeDomain    ScopeType = "DOMAIN"
	ScopeWorkspace ScopeType = "WORKSPACE"
	ScopeProject   ScopeType = "PROJECT"
)

// Scope addresses one containment level: a domain, a workspace or a project.
type Scope struct {
	Type ScopeType `json:"scope_type"`
	UUID string    `json:"scope_uuid"`
}

func DomainScope(id DomainUUID) Scope       { return Scope{Type: ScopeDomain, UUID: id} }
func WorkspaceScope(id WorkspaceUUID) Scope { return Scope{Type: ScopeWorkspace, UUID: id} }
func ProjectScope(id ProjectUUID) Scope     { return Scope{Type: ScopeProject, UUID: id} }

// UserProjects is the set of project ids a principal is authorized to
// act on, injected by the authentication layer. Nil means unrestricted.
type UserProjects []ProjectUUID

func (p UserProjects) Restricted() bool { return p != nil }

func (p UserProjects) Contains(id ProjectUUID) bool {
	if p == nil {
		return true
	}
	for i := range p {
		if p[i] == id {
			return true
		}
	}
	return false
}
