package usecase

import (
	"errors"
	"fmt"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type CreateRoleBindingParams struct {
	PrincipalUUID model.PrincipalUUID
	RoleUUID      model.RoleUUID
	Scope         model.Scope
}

type RoleBindingService struct {
	domainUUID model.DomainUUID

	repo   *repo.RoleBindingRepository
	scopes *ScopeHierarchy
}

func RoleBindings(db *io.MemoryStoreTxn, domainUUID model.DomainUUID) *RoleBindingService {
	return &RoleBindingService{
		domainUUID: domainUUID,

		repo:   repo.NewRoleBindingRepository(db),
		scopes: NewScopeHierarchy(db),
	}
}

func (s *RoleBindingService) Create(params CreateRoleBindingParams) (*model.RoleBinding, error) {
	// the binding scope must exist and lie within the service's domain
	chain, err := s.scopes.ResolveAncestors(params.Scope)
	if err != nil {
		return nil, err
	}
	if chain.DomainUUID != s.domainUUID {
		return nil, fmt.Errorf("%w: scope %s %q is outside domain %q",
			model.ErrScopeMismatch, params.Scope.Type, params.Scope.UUID, s.domainUUID)
	}

	rb := &model.RoleBinding{
		UUID:          uuid.New(),
		PrincipalUUID: params.PrincipalUUID,
		RoleUUID:      params.RoleUUID,
		ScopeType:     params.Scope.Type,
		ScopeUUID:     params.Scope.UUID,
		DomainUUID:    s.domainUUID,
		Version:       model.NewResourceVersion(),
	}
	if err := s.repo.Create(rb); err != nil {
		if errors.Is(err, memdb.ErrUniqueConstraint) {
			return nil, fmt.Errorf("%w: binding of role %q to principal %q at scope %q",
				model.ErrAlreadyExists, params.RoleUUID, params.PrincipalUUID, params.Scope.UUID)
		}
		return nil, err
	}
	return rb, nil
}

func (s *RoleBindingService) Delete(id model.RoleBindingUUID) error {
	rb, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rb.DomainUUID != s.domainUUID {
		return model.ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *RoleBindingService) GetByID(id model.RoleBindingUUID) (*model.RoleBinding, error) {
	rb, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rb.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	return rb, nil
}

func (s *RoleBindingService) ListForPrincipal(principalUUID model.PrincipalUUID) ([]*model.RoleBinding, error) {
	return s.repo.ListForPrincipal(principalUUID)
}
