package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type RoleService struct {
	repo *repo.RoleRepository
}

func Roles(db *io.MemoryStoreTxn) *RoleService {
	return &RoleService{repo: repo.NewRoleRepository(db)}
}

func (s *RoleService) Create(identifier string, roleType model.RoleType,
	permissions []model.PermissionName) (*model.Role, error) {
	role := &model.Role{
		UUID:        uuid.New(),
		Identifier:  identifier,
		Type:        roleType,
		Permissions: permissions,
		Version:     model.NewResourceVersion(),
	}
	if err := s.repo.Create(role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(updated *model.Role) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Version != updated.Version {
		return model.ErrBadVersion
	}
	updated.Version = model.NewResourceVersion()
	return s.repo.Update(updated)
}

// Delete fails while role bindings still grant the role.
func (s *RoleService) Delete(id model.RoleUUID) error {
	return s.repo.Delete(id)
}

func (s *RoleService) GetByID(id model.RoleUUID) (*model.Role, error) {
	return s.repo.GetByID(id)
}

func (s *RoleService) List() ([]*model.Role, error) {
	return s.repo.List()
}
