package usecase

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/flant/identity-core/fixtures"
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/repo"
)

func RunFixtures(t *testing.T, fixtureFuncs ...func(t *testing.T, store *io.MemoryStore)) *io.MemoryStore {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, nil, hclog.NewNullLogger())
	require.NoError(t, err)
	for _, fixture := range fixtureFuncs {
		fixture(t, store)
	}
	return store
}

func DomainFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	domainRepo := repo.NewDomainRepository(tx)
	for _, domain := range fixtures.Domains() {
		tmp := domain
		require.NoError(t, domainRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func WorkspaceFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	wsRepo := repo.NewWorkspaceRepository(tx)
	for _, ws := range fixtures.Workspaces() {
		tmp := ws
		require.NoError(t, wsRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func ProjectFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	projectRepo := repo.NewProjectRepository(tx)
	for _, project := range fixtures.Projects() {
		tmp := project
		require.NoError(t, projectRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func UserFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	userRepo := repo.NewUserRepository(tx)
	for _, user := range fixtures.Users() {
		tmp := user
		require.NoError(t, userRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func RoleFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	roleRepo := repo.NewRoleRepository(tx)
	for _, role := range fixtures.Roles() {
		tmp := role
		require.NoError(t, roleRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func RoleBindingFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	rbRepo := repo.NewRoleBindingRepository(tx)
	for _, rb := range fixtures.RoleBindings() {
		tmp := rb
		require.NoError(t, rbRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func ProviderSchemaFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	schemaRepo := repo.NewProviderSchemaRepository(tx)
	for _, schema := range fixtures.ProviderSchemas() {
		tmp := schema
		require.NoError(t, schemaRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func TrustedAccountFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	taRepo := repo.NewTrustedAccountRepository(tx)
	for _, ta := range fixtures.TrustedAccounts() {
		tmp := ta
		require.NoError(t, taRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func ServiceAccountFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	saRepo := repo.NewServiceAccountRepository(tx)
	for _, sa := range fixtures.ServiceAccounts() {
		tmp := sa
		require.NoError(t, saRepo.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

// BaseFixture loads the whole scope graph most tests need.
func BaseFixture(t *testing.T, store *io.MemoryStore) {
	for _, fixture := range []func(*testing.T, *io.MemoryStore){
		DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture,
		RoleFixture, RoleBindingFixture, ProviderSchemaFixture,
		TrustedAccountFixture, ServiceAccountFixture,
	} {
		fixture(t, store)
	}
}

func memberService(t *testing.T, tx *io.MemoryStoreTxn) *ServiceAccountService {
	t.Helper()
	return ServiceAccounts(tx, fixtures.DomainUUID1, fixtures.UserUUID1, nil, hclog.NewNullLogger())
}

func adminService(t *testing.T, tx *io.MemoryStoreTxn) *ServiceAccountService {
	t.Helper()
	return ServiceAccounts(tx, fixtures.DomainUUID1, fixtures.UserUUID2, nil, hclog.NewNullLogger())
}
