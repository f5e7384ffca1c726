package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/flant/identity-core/fixtures"
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
)

func apiKeyService(t *testing.T, store *io.MemoryStore, ref time.Time) (*APIKeyService, *io.MemoryStoreTxn) {
	t.Helper()
	tx := store.Txn(true)
	service := APIKeys(tx, fixtures.DomainUUID1, hclog.NewNullLogger())
	service.now = func() time.Time { return ref }
	return service, tx
}

func Test_APIKeyCreate_DefaultExpiry(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	ref := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	service, _ := apiKeyService(t, store, ref)

	key, err := service.Create(CreateAPIKeyParams{
		UserUUID:   fixtures.UserUUID1,
		Identifier: "ci-key",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC).Unix(), key.ExpiredAt)
	assert.Equal(t, model.APIKeyStateEnabled, key.State)
	assert.NotEmpty(t, key.Secret)
}

func Test_APIKeyCreate_RejectsExpiryBeyondCap(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service, _ := apiKeyService(t, store, ref)

	requested := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.Create(CreateAPIKeyParams{
		UserUUID:   fixtures.UserUUID1,
		Identifier: "long-lived",
		ExpiredAt:  &requested,
	})

	require.Error(t, err)
	var limitErr *model.ExpiredLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Contains(t, limitErr.Error(), "2030-01-01T23:59:59")
}

func Test_APIKeyCreate_UserOfAnotherDomain(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	_, err := service.Create(CreateAPIKeyParams{
		UserUUID:   fixtures.UserUUID3, // domain2
		Identifier: "foreign",
	})

	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func Test_APIKeyDisable_Idempotent(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	key, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: "k"})
	require.NoError(t, err)

	disabled, err := service.Disable(key.UUID)
	require.NoError(t, err)
	assert.Equal(t, model.APIKeyStateDisabled, disabled.State)
	assert.NotEqual(t, key.Version, disabled.Version)

	// disabling again is a no-op: same state, same version
	again, err := service.Disable(key.UUID)
	require.NoError(t, err)
	assert.Equal(t, model.APIKeyStateDisabled, again.State)
	assert.Equal(t, disabled.Version, again.Version)

	enabled, err := service.Enable(key.UUID)
	require.NoError(t, err)
	assert.Equal(t, model.APIKeyStateEnabled, enabled.State)
}

func Test_APIKeySecret_ShownOnceNeverListed(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	created, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: "k"})
	require.NoError(t, err)
	require.NotEmpty(t, created.Secret)

	got, err := service.Get(created.UUID)
	require.NoError(t, err)
	assert.Empty(t, got.Secret)

	listed, _, err := service.List(ListAPIKeysParams{UserUUID: fixtures.UserUUID1})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Secret)

	// the sensitive tag also strips it from serialized payloads
	payload, err := model.Marshal(got, false)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(payload, "secret").Exists())
}

func Test_APIKeyUpdate_Rename(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	key, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: "old-name"})
	require.NoError(t, err)

	renamed, err := service.Update(key.UUID, "new-name")
	require.NoError(t, err)
	assert.Equal(t, "new-name", renamed.Identifier)
	assert.NotEqual(t, key.Version, renamed.Version)
}

func Test_APIKeyList_KeywordAndState(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	for _, name := range []string{"deploy-prod", "deploy-stage", "backup"} {
		_, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: name})
		require.NoError(t, err)
	}

	matched, total, err := service.List(ListAPIKeysParams{Keyword: "deploy"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, matched, 2)

	matched, _, err = service.List(ListAPIKeysParams{State: model.APIKeyStateDisabled})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func Test_APIKeyList_LimitCapped(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	for _, name := range []string{"a", "b", "c"} {
		_, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: name})
		require.NoError(t, err)
	}

	matched, total, err := service.List(ListAPIKeysParams{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, matched, 2)

	// absurd limits fall back to the cap
	matched, _, err = service.List(ListAPIKeysParams{Limit: 100000})
	require.NoError(t, err)
	assert.Len(t, matched, 3)
}

func Test_APIKeyStat_ByState(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	k1, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: "k1"})
	require.NoError(t, err)
	_, err = service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID2, Identifier: "k2"})
	require.NoError(t, err)
	_, err = service.Disable(k1.UUID)
	require.NoError(t, err)

	counts, err := service.Stat("state")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"DISABLED": 1, "ENABLED": 1}, counts)
}

func Test_APIKeyDelete(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture, UserFixture)
	service, _ := apiKeyService(t, store, time.Now())

	key, err := service.Create(CreateAPIKeyParams{UserUUID: fixtures.UserUUID1, Identifier: "k"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(key.UUID))

	_, err = service.Get(key.UUID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
