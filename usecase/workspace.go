package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type WorkspaceService struct {
	domainUUID model.DomainUUID

	repo *repo.WorkspaceRepository
}

func Workspaces(db *io.MemoryStoreTxn, domainUUID model.DomainUUID) *WorkspaceService {
	return &WorkspaceService{
		domainUUID: domainUUID,
		repo:       repo.NewWorkspaceRepository(db),
	}
}

func (s *WorkspaceService) Create(identifier string) (*model.Workspace, error) {
	ws := &model.Workspace{
		UUID:       uuid.New(),
		DomainUUID: s.domainUUID,
		Identifier: identifier,
		Version:    model.NewResourceVersion(),
	}
	if err := s.repo.Create(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorkspaceService) Update(updated *model.Workspace) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.DomainUUID != s.domainUUID {
		return model.ErrNotFound
	}
	if stored.Version != updated.Version {
		return model.ErrBadVersion
	}
	updated.DomainUUID = s.domainUUID
	updated.Version = model.NewResourceVersion()
	return s.repo.Update(updated)
}

// Delete cascades to projects, trusted accounts and bindings anchored at
// the workspace.
func (s *WorkspaceService) Delete(id model.WorkspaceUUID) error {
	ws, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ws.DomainUUID != s.domainUUID {
		return model.ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *WorkspaceService) GetByID(id model.WorkspaceUUID) (*model.Workspace, error) {
	ws, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ws.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	return ws, nil
}

func (s *WorkspaceService) List() ([]*model.Workspace, error) {
	return s.repo.List(s.domainUUID)
}
