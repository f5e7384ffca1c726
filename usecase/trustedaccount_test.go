package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"

	"github.com/flant/identity-core/fixtures"
)

func Test_TrustedAccountCreate_ValidatesSchema(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProviderSchemaFixture)
	service := TrustedAccounts(store.Txn(true), fixtures.DomainUUID1)

	_, err := service.Create(CreateTrustedAccountParams{
		WorkspaceUUID: fixtures.WorkspaceUUID1,
		Identifier:    "shared",
		Provider:      "aws",
		Data:          map[string]interface{}{"external_id": "x"}, // no account_id
	})

	var violation *model.SchemaViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, []string{"account_id"}, violation.Fields)

	created, err := service.Create(CreateTrustedAccountParams{
		WorkspaceUUID: fixtures.WorkspaceUUID1,
		Identifier:    "shared",
		Provider:      "aws",
		Data:          map[string]interface{}{"account_id": "123456789012"},
	})
	require.NoError(t, err)
	assert.Equal(t, fixtures.DomainUUID1, created.DomainUUID)
}

func Test_TrustedAccountDelete_BlockedWhileReferenced(t *testing.T) {
	store := RunFixtures(t, BaseFixture)
	tx := store.Txn(true)
	service := TrustedAccounts(tx, fixtures.DomainUUID1)

	// sa3 still delegates to trusted account 1
	err := service.Delete(fixtures.TrustedAccountUUID1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, memdb.ErrNotEmptyRelation))

	// after unlinking the delete goes through
	saService := memberService(t, tx)
	_, err = saService.DeleteSecret(fixtures.ServiceAccountUUID3)
	require.NoError(t, err)

	require.NoError(t, service.Delete(fixtures.TrustedAccountUUID1))
}

func Test_TrustedAccountCreate_WorkspaceOfAnotherDomain(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProviderSchemaFixture)
	service := TrustedAccounts(store.Txn(true), fixtures.DomainUUID1)

	_, err := service.Create(CreateTrustedAccountParams{
		WorkspaceUUID: fixtures.WorkspaceUUID3, // domain2
		Identifier:    "shared",
		Provider:      "aws",
		Data:          map[string]interface{}{"account_id": "123456789012"},
	})

	assert.True(t, errors.Is(err, model.ErrNotFound))
}
