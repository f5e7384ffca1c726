package usecase

import (
	"errors"
	"fmt"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
)

// AccountLinkage manages delegation of service account secrets to shared
// trusted accounts. A trusted account is only visible to service accounts
// of its own workspace.
type AccountLinkage struct {
	trustedRepo *repo.TrustedAccountRepository
}

func NewAccountLinkage(db *io.MemoryStoreTxn) *AccountLinkage {
	return &AccountLinkage{
		trustedRepo: repo.NewTrustedAccountRepository(db),
	}
}

// ResolveTrusted looks the trusted account up within the claimed domain
// and workspace. A missing account and an account of another workspace
// are indistinguishable to the caller, both are not found.
func (l *AccountLinkage) ResolveTrusted(id model.TrustedAccountUUID,
	domainUUID model.DomainUUID, workspaceUUID model.WorkspaceUUID) (*model.TrustedAccount, error) {
	ta, err := l.trustedRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, &model.ResourceNotFoundError{
				Key:    "trusted_account_id",
				Reason: fmt.Sprintf("trusted account %q does not exist", id),
			}
		}
		return nil, err
	}
	if ta.DomainUUID != domainUUID || ta.WorkspaceUUID != workspaceUUID {
		return nil, &model.ResourceNotFoundError{
			Key:    "trusted_account_id",
			Reason: fmt.Sprintf("trusted account %q does not belong to workspace %q", id, workspaceUUID),
		}
	}
	return ta, nil
}
