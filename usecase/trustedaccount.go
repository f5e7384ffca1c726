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

type CreateTrustedAccountParams struct {
	WorkspaceUUID model.WorkspaceUUID
	Identifier    string
	Provider      string
	Data          map[string]interface{}
}

type TrustedAccountService struct {
	domainUUID model.DomainUUID

	trustedRepo   *repo.TrustedAccountRepository
	workspaceRepo *repo.WorkspaceRepository

	validator *DataValidator
}

func TrustedAccounts(db *io.MemoryStoreTxn, domainUUID model.DomainUUID) *TrustedAccountService {
	return &TrustedAccountService{
		domainUUID: domainUUID,

		trustedRepo:   repo.NewTrustedAccountRepository(db),
		workspaceRepo: repo.NewWorkspaceRepository(db),

		validator: NewDataValidator(db),
	}
}

func (s *TrustedAccountService) Create(params CreateTrustedAccountParams) (*model.TrustedAccount, error) {
	ws, err := s.workspaceRepo.GetByID(params.WorkspaceUUID)
	if err != nil {
		return nil, err
	}
	if ws.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	err = s.validator.Validate(s.domainUUID, params.Provider, model.CategoryTrustedAccount, params.Data)
	if err != nil {
		return nil, err
	}

	ta := &model.TrustedAccount{
		UUID:          uuid.New(),
		WorkspaceUUID: params.WorkspaceUUID,
		DomainUUID:    s.domainUUID,
		Identifier:    params.Identifier,
		Provider:      params.Provider,
		Version:       model.NewResourceVersion(),
		Data:          params.Data,
	}
	if err := s.trustedRepo.Create(ta); err != nil {
		if errors.Is(err, memdb.ErrUniqueConstraint) {
			return nil, fmt.Errorf("%w: trusted account %q for provider %q in workspace %q",
				model.ErrAlreadyExists, params.Identifier, params.Provider, params.WorkspaceUUID)
		}
		return nil, err
	}
	return ta, nil
}

func (s *TrustedAccountService) Update(id model.TrustedAccountUUID, data map[string]interface{}) (*model.TrustedAccount, error) {
	ta, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if data != nil {
		err := s.validator.Validate(s.domainUUID, ta.Provider, model.CategoryTrustedAccount, data)
		if err != nil {
			return nil, err
		}
		ta.Data = data
	}
	ta.Version = model.NewResourceVersion()
	if err := s.trustedRepo.Update(ta); err != nil {
		return nil, err
	}
	return ta, nil
}

// Delete fails while any service account still delegates to the trusted
// account.
func (s *TrustedAccountService) Delete(id model.TrustedAccountUUID) error {
	if _, err := s.getOwned(id); err != nil {
		return err
	}
	return s.trustedRepo.Delete(id)
}

func (s *TrustedAccountService) Get(id model.TrustedAccountUUID) (*model.TrustedAccount, error) {
	return s.getOwned(id)
}

func (s *TrustedAccountService) List(workspaceUUID model.WorkspaceUUID) ([]*model.TrustedAccount, error) {
	return s.trustedRepo.List(workspaceUUID)
}

func (s *TrustedAccountService) getOwned(id model.TrustedAccountUUID) (*model.TrustedAccount, error) {
	ta, err := s.trustedRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ta.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	copied := *ta
	return &copied, nil
}
