package usecase

import (
	"fmt"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
)

// Ancestry is the resolved containment chain of one scope. WorkspaceUUID
// and ProjectUUID are empty above their level.
type Ancestry struct {
	DomainUUID    model.DomainUUID
	WorkspaceUUID model.WorkspaceUUID
	ProjectUUID   model.ProjectUUID
}

// ScopeHierarchy answers containment and ancestry queries over the
// domain/workspace/project chain. All authorization decisions derive
// containment from here, never per entity type.
type ScopeHierarchy struct {
	domainRepo    *repo.DomainRepository
	workspaceRepo *repo.WorkspaceRepository
	projectRepo   *repo.ProjectRepository
}

func NewScopeHierarchy(db *io.MemoryStoreTxn) *ScopeHierarchy {
	return &ScopeHierarchy{
		domainRepo:    repo.NewDomainRepository(db),
		workspaceRepo: repo.NewWorkspaceRepository(db),
		projectRepo:   repo.NewProjectRepository(db),
	}
}

func (h *ScopeHierarchy) ResolveAncestors(scope model.Scope) (Ancestry, error) {
	switch scope.Type {
	case model.ScopeDomain:
		domain, err := h.domainRepo.GetByID(scope.UUID)
		if err != nil {
			return Ancestry{}, err
		}
		return Ancestry{DomainUUID: domain.UUID}, nil

	case model.ScopeWorkspace:
		ws, err := h.workspaceRepo.GetByID(scope.UUID)
		if err != nil {
			return Ancestry{}, err
		}
		return Ancestry{DomainUUID: ws.DomainUUID, WorkspaceUUID: ws.UUID}, nil

	case model.ScopeProject:
		project, err := h.projectRepo.GetByID(scope.UUID)
		if err != nil {
			return Ancestry{}, err
		}
		return Ancestry{
			DomainUUID:    project.DomainUUID,
			WorkspaceUUID: project.WorkspaceUUID,
			ProjectUUID:   project.UUID,
		}, nil
	}
	return Ancestry{}, fmt.Errorf("unknown scope type %q", scope.Type)
}

// IsDescendantOrEqual reports whether candidate lies at or below ancestor
// in the containment chain.
func (h *ScopeHierarchy) IsDescendantOrEqual(candidate model.Scope, ancestor model.Scope) (bool, error) {
	if candidate == ancestor {
		return true, nil
	}
	chain, err := h.ResolveAncestors(candidate)
	if err != nil {
		return false, err
	}
	switch ancestor.Type {
	case model.ScopeDomain:
		return chain.DomainUUID == ancestor.UUID, nil
	case model.ScopeWorkspace:
		return chain.WorkspaceUUID == ancestor.UUID, nil
	case model.ScopeProject:
		return chain.ProjectUUID == ancestor.UUID, nil
	}
	return false, fmt.Errorf("unknown scope type %q", ancestor.Type)
}

// CheckProjectScope verifies the project belongs to the claimed workspace
// and domain. Writes do not proceed past a mismatch.
func (h *ScopeHierarchy) CheckProjectScope(projectUUID model.ProjectUUID,
	workspaceUUID model.WorkspaceUUID, domainUUID model.DomainUUID) error {
	project, err := h.projectRepo.GetByID(projectUUID)
	if err != nil {
		return err
	}
	if project.WorkspaceUUID != workspaceUUID || project.DomainUUID != domainUUID {
		return fmt.Errorf("%w: project %q is not under workspace %q of domain %q",
			model.ErrScopeMismatch, projectUUID, workspaceUUID, domainUUID)
	}
	return nil
}
