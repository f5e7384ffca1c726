package model

type (
	DomainUUID         = string
	WorkspaceUUID      = string
	ProjectUUID        = string
	UserUUID           = string
	APIKeyUUID         = string
	ServiceAccountUUID = string
	TrustedAccountUUID = string
	RoleUUID           = string
	RoleBindingUUID    = string
	ProviderSchemaUUID = string

	// PrincipalUUID is a User or ServiceAccount uuid
	PrincipalUUID = string

	PermissionName = string

	UnixTime = int64
)
