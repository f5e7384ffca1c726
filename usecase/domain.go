package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type DomainService struct {
	repo *repo.DomainRepository
}

func Domains(db *io.MemoryStoreTxn) *DomainService {
	return &DomainService{repo: repo.NewDomainRepository(db)}
}

func (s *DomainService) Create(identifier string) (*model.Domain, error) {
	domain := &model.Domain{
		UUID:       uuid.New(),
		Identifier: identifier,
		Version:    model.NewResourceVersion(),
	}
	if err := s.repo.Create(domain); err != nil {
		return nil, err
	}
	return domain, nil
}

func (s *DomainService) Update(updated *model.Domain) error {
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

// Delete cascades through everything the domain owns.
func (s *DomainService) Delete(id model.DomainUUID) error {
	return s.repo.Delete(id)
}

func (s *DomainService) GetByID(id model.DomainUUID) (*model.Domain, error) {
	return s.repo.GetByID(id)
}

func (s *DomainService) List() ([]*model.Domain, error) {
	return s.repo.List()
}
