package usecase

import (
	"errors"
	"fmt"

	log "github.com/hashicorp/go-hclog"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

const (
	PermissionServiceAccountWrite model.PermissionName = "identity:ServiceAccount.write"
	PermissionServiceAccountRead  model.PermissionName = "identity:ServiceAccount.read"
)

// write grants are never widened to DOMAIN_ADMIN implicitly
var (
	serviceAccountWriteRoleTypes = []model.RoleType{
		model.RoleTypeWorkspaceOwner, model.RoleTypeWorkspaceMember,
	}
	serviceAccountReadRoleTypes = []model.RoleType{
		model.RoleTypeDomainAdmin, model.RoleTypeWorkspaceOwner, model.RoleTypeWorkspaceMember,
	}
)

type CreateServiceAccountParams struct {
	ProjectUUID   model.ProjectUUID
	WorkspaceUUID model.WorkspaceUUID
	Identifier    string
	Provider      string
	Data          map[string]interface{}
	Tags          map[string]string

	// either delegate secrets to a trusted account of the same
	// workspace or hold them independently
	TrustedAccountUUID model.TrustedAccountUUID
	SecretData         map[string]interface{}
}

type UpdateServiceAccountParams struct {
	Identifier string
	// Data nil means the payload did not include data and revalidation
	// is skipped, partial-update semantics
	Data map[string]interface{}
	Tags map[string]string
}

type UpdateSecretParams struct {
	SecretData         map[string]interface{}
	TrustedAccountUUID model.TrustedAccountUUID
}

type ListServiceAccountsParams struct {
	ProjectUUID   model.ProjectUUID   // optional
	WorkspaceUUID model.WorkspaceUUID // optional
	Provider      string              // optional
	Keyword       string
	Limit         int
}

// ServiceAccountService owns the service account lifecycle within one
// domain, on behalf of one authenticated principal. Every call follows
// the same order: authorize, check scope, validate, mutate or query.
type ServiceAccountService struct {
	domainUUID    model.DomainUUID
	principalUUID model.PrincipalUUID
	userProjects  model.UserProjects

	saRepo *repo.ServiceAccountRepository

	scopes     *ScopeHierarchy
	authorizer *Authorizer
	validator  *DataValidator
	linkage    *AccountLinkage

	logger log.Logger
}

func ServiceAccounts(db *io.MemoryStoreTxn, domainUUID model.DomainUUID,
	principalUUID model.PrincipalUUID, userProjects model.UserProjects,
	parentLogger log.Logger) *ServiceAccountService {
	return &ServiceAccountService{
		domainUUID:    domainUUID,
		principalUUID: principalUUID,
		userProjects:  userProjects,

		saRepo: repo.NewServiceAccountRepository(db),

		scopes:     NewScopeHierarchy(db),
		authorizer: AuthorizerForTxn(db, parentLogger),
		validator:  NewDataValidator(db),
		linkage:    NewAccountLinkage(db),

		logger: parentLogger.Named("ServiceAccountService"),
	}
}

func (s *ServiceAccountService) Create(params CreateServiceAccountParams) (*model.ServiceAccount, error) {
	err := s.authorizer.Authorize(s.principalUUID, PermissionServiceAccountWrite,
		serviceAccountWriteRoleTypes, model.WorkspaceScope(params.WorkspaceUUID))
	if err != nil {
		return nil, err
	}
	if err := s.scopes.CheckProjectScope(params.ProjectUUID, params.WorkspaceUUID, s.domainUUID); err != nil {
		return nil, err
	}
	if !s.userProjects.Contains(params.ProjectUUID) {
		return nil, &model.ResourceNotFoundError{
			Key:    "project_id",
			Reason: fmt.Sprintf("project %q is not available to the principal", params.ProjectUUID),
		}
	}
	if err := s.validator.Validate(s.domainUUID, params.Provider, model.CategoryServiceAccount, params.Data); err != nil {
		return nil, err
	}
	if params.TrustedAccountUUID != "" {
		_, err := s.linkage.ResolveTrusted(params.TrustedAccountUUID, s.domainUUID, params.WorkspaceUUID)
		if err != nil {
			return nil, err
		}
	}

	sa := &model.ServiceAccount{
		UUID:               uuid.New(),
		ProjectUUID:        params.ProjectUUID,
		WorkspaceUUID:      params.WorkspaceUUID,
		DomainUUID:         s.domainUUID,
		Identifier:         params.Identifier,
		Provider:           params.Provider,
		Version:            model.NewResourceVersion(),
		Data:               params.Data,
		Tags:               params.Tags,
		TrustedAccountUUID: params.TrustedAccountUUID,
		SecretData:         params.SecretData,
	}
	if err := s.saRepo.Create(sa); err != nil {
		if errors.Is(err, memdb.ErrUniqueConstraint) {
			return nil, fmt.Errorf("%w: service account %q for provider %q in project %q",
				model.ErrAlreadyExists, params.Identifier, params.Provider, params.ProjectUUID)
		}
		return nil, err
	}
	return sa, nil
}

func (s *ServiceAccountService) Update(id model.ServiceAccountUUID, params UpdateServiceAccountParams) (*model.ServiceAccount, error) {
	sa, err := s.getMutable(id)
	if err != nil {
		return nil, err
	}
	if params.Data != nil {
		err := s.validator.Validate(s.domainUUID, sa.Provider, model.CategoryServiceAccount, params.Data)
		if err != nil {
			return nil, err
		}
		sa.Data = params.Data
	}
	if params.Identifier != "" {
		sa.Identifier = params.Identifier
	}
	if params.Tags != nil {
		sa.Tags = params.Tags
	}
	sa.Version = model.NewResourceVersion()
	if err := s.saRepo.Update(sa); err != nil {
		if errors.Is(err, memdb.ErrUniqueConstraint) {
			return nil, fmt.Errorf("%w: service account %q for provider %q in project %q",
				model.ErrAlreadyExists, sa.Identifier, sa.Provider, sa.ProjectUUID)
		}
		return nil, err
	}
	return sa, nil
}

// UpdateSecret replaces the account's secret material: either directly
// held secret data or a delegation to a trusted account of the same
// workspace.
func (s *ServiceAccountService) UpdateSecret(id model.ServiceAccountUUID, params UpdateSecretParams) (*model.ServiceAccount, error) {
	sa, err := s.getMutable(id)
	if err != nil {
		return nil, err
	}
	if params.TrustedAccountUUID != "" {
		_, err := s.linkage.ResolveTrusted(params.TrustedAccountUUID, s.domainUUID, sa.WorkspaceUUID)
		if err != nil {
			return nil, err
		}
	}
	sa.TrustedAccountUUID = params.TrustedAccountUUID
	sa.SecretData = params.SecretData
	sa.Version = model.NewResourceVersion()
	if err := s.saRepo.Update(sa); err != nil {
		return nil, err
	}
	return sa, nil
}

// DeleteSecret clears the secret material and the trusted account
// linkage. The trusted account itself is untouched, other service
// accounts may still delegate to it.
func (s *ServiceAccountService) DeleteSecret(id model.ServiceAccountUUID) (*model.ServiceAccount, error) {
	sa, err := s.getMutable(id)
	if err != nil {
		return nil, err
	}
	sa.TrustedAccountUUID = ""
	sa.SecretData = nil
	sa.Version = model.NewResourceVersion()
	if err := s.saRepo.Update(sa); err != nil {
		return nil, err
	}
	return sa, nil
}

func (s *ServiceAccountService) Delete(id model.ServiceAccountUUID) error {
	if _, err := s.getMutable(id); err != nil {
		return err
	}
	return s.saRepo.Delete(id)
}

func (s *ServiceAccountService) Get(id model.ServiceAccountUUID) (*model.ServiceAccount, error) {
	sa, err := s.getVisible(id)
	if err != nil {
		return nil, err
	}
	err = s.authorizer.Authorize(s.principalUUID, PermissionServiceAccountRead,
		serviceAccountReadRoleTypes, model.WorkspaceScope(sa.WorkspaceUUID))
	if err != nil {
		return nil, err
	}
	return withoutSecretData(sa), nil
}

func (s *ServiceAccountService) List(params ListServiceAccountsParams) ([]*model.ServiceAccount, int, error) {
	stored, err := s.listStored(params)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*model.ServiceAccount, 0, len(stored))
	for _, sa := range stored {
		if !s.userProjects.Contains(sa.ProjectUUID) {
			continue
		}
		if params.Provider != "" && sa.Provider != params.Provider {
			continue
		}
		if !matchKeyword(params.Keyword, sa.UUID, sa.Identifier) {
			continue
		}
		matched = append(matched, withoutSecretData(sa))
	}

	total := len(matched)
	limit := capLimit(params.Limit)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// Stat counts the principal's visible service accounts grouped by the
// value at a gjson field path, e.g. "provider" or "project_uuid".
func (s *ServiceAccountService) Stat(fieldPath string) (map[string]int, error) {
	stored, err := s.saRepo.ListByDomain(s.domainUUID)
	if err != nil {
		return nil, err
	}
	objs := make([]interface{}, 0, len(stored))
	for _, sa := range stored {
		if !s.userProjects.Contains(sa.ProjectUUID) {
			continue
		}
		objs = append(objs, sa)
	}
	return statCount(objs, fieldPath)
}

func (s *ServiceAccountService) listStored(params ListServiceAccountsParams) ([]*model.ServiceAccount, error) {
	switch {
	case params.ProjectUUID != "":
		return s.saRepo.List(params.ProjectUUID)
	case params.WorkspaceUUID != "":
		return s.saRepo.ListByWorkspace(params.WorkspaceUUID)
	default:
		return s.saRepo.ListByDomain(s.domainUUID)
	}
}

// getVisible applies the read-side visibility rules: the account must
// belong to the service's domain and to one of the principal's projects.
func (s *ServiceAccountService) getVisible(id model.ServiceAccountUUID) (*model.ServiceAccount, error) {
	sa, err := s.saRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sa.DomainUUID != s.domainUUID || !s.userProjects.Contains(sa.ProjectUUID) {
		return nil, model.ErrNotFound
	}
	// stored objects are immutable, mutations go through a copy
	copied := *sa
	return &copied, nil
}

// getMutable adds the write-side gates on top of visibility: write
// authorization at the account's workspace and the managed guard.
func (s *ServiceAccountService) getMutable(id model.ServiceAccountUUID) (*model.ServiceAccount, error) {
	sa, err := s.getVisible(id)
	if err != nil {
		return nil, err
	}
	err = s.authorizer.Authorize(s.principalUUID, PermissionServiceAccountWrite,
		serviceAccountWriteRoleTypes, model.WorkspaceScope(sa.WorkspaceUUID))
	if err != nil {
		return nil, err
	}
	if sa.Managed {
		return nil, fmt.Errorf("%w: service account %q", model.ErrManagedResourceImmutable, sa.UUID)
	}
	return sa, nil
}

func withoutSecretData(sa *model.ServiceAccount) *model.ServiceAccount {
	copied := *sa
	copied.SecretData = nil
	return &copied
}
