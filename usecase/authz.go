package usecase

import (
	"fmt"

	log "github.com/hashicorp/go-hclog"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
)

type RoleBindingsInformer interface {
	ListForPrincipal(principalUUID model.PrincipalUUID) ([]*model.RoleBinding, error)
}

type RoleInformer interface {
	GetByID(id model.RoleUUID) (*model.Role, error)
}

type ScopeInformer interface {
	IsDescendantOrEqual(candidate model.Scope, ancestor model.Scope) (bool, error)
}

// Authorizer decides whether a principal's role grants a required
// permission within a target scope. Union semantics: any single matching
// binding is sufficient, there is no precedence among bindings.
type Authorizer struct {
	bindings RoleBindingsInformer
	roles    RoleInformer
	scopes   ScopeInformer

	logger log.Logger
}

func NewAuthorizer(bindings RoleBindingsInformer, roles RoleInformer, scopes ScopeInformer,
	parentLogger log.Logger) *Authorizer {
	return &Authorizer{
		bindings: bindings,
		roles:    roles,
		scopes:   scopes,
		logger:   parentLogger.Named("Authorizer"),
	}
}

func AuthorizerForTxn(db *io.MemoryStoreTxn, parentLogger log.Logger) *Authorizer {
	return NewAuthorizer(repo.NewRoleBindingRepository(db), repo.NewRoleRepository(db),
		NewScopeHierarchy(db), parentLogger)
}

// Authorize returns nil on Allow. On Deny it returns ErrInsufficientRole
// when no binding of an eligible role type reaches the target scope, and
// ErrPermissionNotGranted when eligible bindings exist but none of their
// roles grants the permission. Role types are an eligibility gate only,
// never an implicit widening: an operation that wants DOMAIN_ADMIN writes
// must list DOMAIN_ADMIN in roleTypes explicitly.
func (a *Authorizer) Authorize(principalUUID model.PrincipalUUID, permission model.PermissionName,
	roleTypes []model.RoleType, target model.Scope) error {
	bindings, err := a.bindings.ListForPrincipal(principalUUID)
	if err != nil {
		return err
	}

	eligible := 0
	for _, binding := range bindings {
		covers, err := a.scopes.IsDescendantOrEqual(target, binding.Scope())
		if err != nil {
			return err
		}
		if !covers {
			continue
		}
		role, err := a.roles.GetByID(binding.RoleUUID)
		if err != nil {
			return fmt.Errorf("role %q of binding %q: %w", binding.RoleUUID, binding.UUID, err)
		}
		if !roleTypeIn(role.Type, roleTypes) {
			continue
		}
		eligible++
		if role.Grants(permission) {
			return nil
		}
	}

	if eligible == 0 {
		a.logger.Debug("deny", "principal", principalUUID, "permission", permission, "reason", "insufficient role")
		return fmt.Errorf("%w: principal %q at scope %s %q",
			model.ErrInsufficientRole, principalUUID, target.Type, target.UUID)
	}
	a.logger.Debug("deny", "principal", principalUUID, "permission", permission, "reason", "permission not granted")
	return fmt.Errorf("%w: %q for principal %q at scope %s %q",
		model.ErrPermissionNotGranted, permission, principalUUID, target.Type, target.UUID)
}

func roleTypeIn(t model.RoleType, set []model.RoleType) bool {
	for _, rt := range set {
		if rt == t {
			return true
		}
	}
	return false
}
