package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type ProjectService struct {
	domainUUID    model.DomainUUID
	workspaceUUID model.WorkspaceUUID

	repo          *repo.ProjectRepository
	workspaceRepo *repo.WorkspaceRepository
}

func Projects(db *io.MemoryStoreTxn, domainUUID model.DomainUUID, workspaceUUID model.WorkspaceUUID) *ProjectService {
	return &ProjectService{
		domainUUID:    domainUUID,
		workspaceUUID: workspaceUUID,

		repo:          repo.NewProjectRepository(db),
		workspaceRepo: repo.NewWorkspaceRepository(db),
	}
}

func (s *ProjectService) Create(identifier string) (*model.Project, error) {
	ws, err := s.workspaceRepo.GetByID(s.workspaceUUID)
	if err != nil {
		return nil, err
	}
	if ws.DomainUUID != s.domainUUID {
		return nil, model.ErrScopeMismatch
	}

	project := &model.Project{
		UUID:          uuid.New(),
		WorkspaceUUID: s.workspaceUUID,
		DomainUUID:    s.domainUUID,
		Identifier:    identifier,
		Version:       model.NewResourceVersion(),
	}
	if err := s.repo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(updated *model.Project) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.WorkspaceUUID != s.workspaceUUID {
		return model.ErrNotFound
	}
	if stored.Version != updated.Version {
		return model.ErrBadVersion
	}
	updated.WorkspaceUUID = s.workspaceUUID
	updated.DomainUUID = s.domainUUID
	updated.Version = model.NewResourceVersion()
	return s.repo.Update(updated)
}

// Delete cascades to the project's service accounts and bindings.
func (s *ProjectService) Delete(id model.ProjectUUID) error {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if project.WorkspaceUUID != s.workspaceUUID {
		return model.ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *ProjectService) GetByID(id model.ProjectUUID) (*model.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.WorkspaceUUID != s.workspaceUUID {
		return nil, model.ErrNotFound
	}
	return project, nil
}

func (s *ProjectService) List() ([]*model.Project, error) {
	return s.repo.List(s.workspaceUUID)
}
