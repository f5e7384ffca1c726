package usecase

import (
	"fmt"
	"time"

	log "github.com/hashicorp/go-hclog"
	"github.com/sethvargo/go-password/password"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

const apiKeySecretLength = 48

type CreateAPIKeyParams struct {
	UserUUID   model.UserUUID
	Identifier string
	// ExpiredAt, when set, is normalized to end-of-day on its date;
	// when nil the default one year window applies
	ExpiredAt *time.Time
}

type ListAPIKeysParams struct {
	UserUUID model.UserUUID    // optional, narrows to one owner
	State    model.APIKeyState // optional
	Keyword  string
	Limit    int
}

// APIKeyService owns the api key lifecycle within one domain. Expiry is
// not consulted by enable/disable: an expired key can still be toggled,
// enforcement at use time belongs to the authentication path.
type APIKeyService struct {
	domainUUID model.DomainUUID

	keysRepo  *repo.APIKeyRepository
	usersRepo *repo.UserRepository

	logger log.Logger

	now func() time.Time
}

func APIKeys(db *io.MemoryStoreTxn, domainUUID model.DomainUUID, parentLogger log.Logger) *APIKeyService {
	return &APIKeyService{
		domainUUID: domainUUID,

		keysRepo:  repo.NewAPIKeyRepository(db),
		usersRepo: repo.NewUserRepository(db),

		logger: parentLogger.Named("APIKeyService"),

		now: time.Now,
	}
}

func (s *APIKeyService) Create(params CreateAPIKeyParams) (*model.APIKey, error) {
	user, err := s.usersRepo.GetByID(params.UserUUID)
	if err != nil {
		return nil, err
	}
	if user.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}

	// one reference timestamp for both compute and validate
	ref := s.now()
	expiredAt := ComputeExpiredAt(ref, params.ExpiredAt)
	if err := ValidateExpiredAt(ref, expiredAt); err != nil {
		return nil, err
	}

	secret, err := password.Generate(apiKeySecretLength, 10, 0, false, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrGenerateKey, err)
	}

	key := &model.APIKey{
		UUID:       uuid.New(),
		UserUUID:   user.UUID,
		DomainUUID: s.domainUUID,
		Identifier: params.Identifier,
		State:      model.APIKeyStateEnabled,
		ExpiredAt:  expiredAt,
		Version:    model.NewResourceVersion(),
		Secret:     secret,
	}
	if err := s.keysRepo.Create(key); err != nil {
		return nil, err
	}
	// the secret is visible on this return value only
	return key, nil
}

// Update renames the key.
func (s *APIKeyService) Update(id model.APIKeyUUID, identifier string) (*model.APIKey, error) {
	key, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	key.Identifier = identifier
	key.Version = model.NewResourceVersion()
	if err := s.keysRepo.Update(key); err != nil {
		return nil, err
	}
	return withoutSecret(key), nil
}

func (s *APIKeyService) Enable(id model.APIKeyUUID) (*model.APIKey, error) {
	return s.setState(id, model.APIKeyStateEnabled)
}

func (s *APIKeyService) Disable(id model.APIKeyUUID) (*model.APIKey, error) {
	return s.setState(id, model.APIKeyStateDisabled)
}

// setState is idempotent: toggling into the current state returns the
// stored key unchanged, with no new version and no change event.
func (s *APIKeyService) setState(id model.APIKeyUUID, state model.APIKeyState) (*model.APIKey, error) {
	key, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if key.State == state {
		return withoutSecret(key), nil
	}
	key.State = state
	key.Version = model.NewResourceVersion()
	if err := s.keysRepo.Update(key); err != nil {
		return nil, err
	}
	return withoutSecret(key), nil
}

func (s *APIKeyService) Delete(id model.APIKeyUUID) error {
	if _, err := s.getOwned(id); err != nil {
		return err
	}
	return s.keysRepo.Delete(id)
}

func (s *APIKeyService) Get(id model.APIKeyUUID) (*model.APIKey, error) {
	key, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	return withoutSecret(key), nil
}

func (s *APIKeyService) List(params ListAPIKeysParams) ([]*model.APIKey, int, error) {
	keys, err := s.listStored(params.UserUUID)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*model.APIKey, 0, len(keys))
	for _, key := range keys {
		if params.State != "" && key.State != params.State {
			continue
		}
		if !matchKeyword(params.Keyword, key.UUID, key.Identifier) {
			continue
		}
		matched = append(matched, withoutSecret(key))
	}

	total := len(matched)
	limit := capLimit(params.Limit)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// Stat counts the domain's keys grouped by the value at a gjson field
// path, e.g. "state" or "user_uuid".
func (s *APIKeyService) Stat(fieldPath string) (map[string]int, error) {
	keys, err := s.keysRepo.ListByDomain(s.domainUUID)
	if err != nil {
		return nil, err
	}
	objs := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		objs = append(objs, key)
	}
	return statCount(objs, fieldPath)
}

func (s *APIKeyService) listStored(userUUID model.UserUUID) ([]*model.APIKey, error) {
	if userUUID != "" {
		user, err := s.usersRepo.GetByID(userUUID)
		if err != nil {
			return nil, err
		}
		if user.DomainUUID != s.domainUUID {
			return nil, model.ErrNotFound
		}
		return s.keysRepo.List(userUUID)
	}
	return s.keysRepo.ListByDomain(s.domainUUID)
}

func (s *APIKeyService) getOwned(id model.APIKeyUUID) (*model.APIKey, error) {
	key, err := s.keysRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if key.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	// stored objects are immutable, mutations go through a copy
	copied := *key
	return &copied, nil
}

func withoutSecret(key *model.APIKey) *model.APIKey {
	copied := *key
	copied.Secret = ""
	return &copied
}
