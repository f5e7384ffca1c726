package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type UserService struct {
	domainUUID model.DomainUUID

	domainRepo *repo.DomainRepository
	usersRepo  *repo.UserRepository
}

func Users(db *io.MemoryStoreTxn, domainUUID model.DomainUUID) *UserService {
	return &UserService{
		domainUUID: domainUUID,

		domainRepo: repo.NewDomainRepository(db),
		usersRepo:  repo.NewUserRepository(db),
	}
}

func (s *UserService) Create(identifier string) (*model.User, error) {
	domain, err := s.domainRepo.GetByID(s.domainUUID)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UUID:           uuid.New(),
		DomainUUID:     s.domainUUID,
		Identifier:     identifier,
		FullIdentifier: identifier + "@" + domain.Identifier,
		State:          model.UserStateEnabled,
		Version:        model.NewResourceVersion(),
	}
	if err := s.usersRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Enable(id model.UserUUID) (*model.User, error) {
	return s.setState(id, model.UserStateEnabled)
}

func (s *UserService) Disable(id model.UserUUID) (*model.User, error) {
	return s.setState(id, model.UserStateDisabled)
}

func (s *UserService) setState(id model.UserUUID, state model.UserState) (*model.User, error) {
	user, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if user.State == state {
		return user, nil
	}
	user.State = state
	user.Version = model.NewResourceVersion()
	if err := s.usersRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete cascades to the user's api keys and role bindings.
func (s *UserService) Delete(id model.UserUUID) error {
	if _, err := s.getOwned(id); err != nil {
		return err
	}
	return s.usersRepo.Delete(id)
}

func (s *UserService) GetByID(id model.UserUUID) (*model.User, error) {
	return s.getOwned(id)
}

func (s *UserService) List() ([]*model.User, error) {
	return s.usersRepo.List(s.domainUUID)
}

func (s *UserService) getOwned(id model.UserUUID) (*model.User, error) {
	user, err := s.usersRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
