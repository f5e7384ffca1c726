package repo

import (
	"github.com/flant/identity-core/memdb"
)

const (
	PK = memdb.PK

	DomainForeignPK         = "domain_uuid"
	WorkspaceForeignPK      = "workspace_uuid"
	ProjectForeignPK        = "project_uuid"
	UserForeignPK           = "user_uuid"
	TrustedAccountForeignPK = "trusted_account_uuid"
	PrincipalForeignPK      = "principal_uuid"
	RoleForeignPK           = "role_uuid"
	ScopeForeignPK          = "scope_uuid"
)

func GetSchema() (*memdb.DBSchema, error) {
	return memdb.MergeDBSchemas(
		DomainSchema(),
		WorkspaceSchema(),
		ProjectSchema(),
		UserSchema(),
		APIKeySchema(),
		ServiceAccountSchema(),
		TrustedAccountSchema(),
		RoleSchema(),
		RoleBindingSchema(),
		ProviderSchemaSchema(),
	)
}
