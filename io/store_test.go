package io_test

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/io/kafka_destination"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
)

func testStore(t *testing.T) *io.MemoryStore {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, nil, hclog.NewNullLogger())
	require.NoError(t, err)
	return store
}

func Test_CommitPersistsChanges(t *testing.T) {
	store := testStore(t)
	store.AddDestination(kafka_destination.NewChangefeedDestination("identity.changes"))

	tx := store.Txn(true)
	domainRepo := repo.NewDomainRepository(tx)
	require.NoError(t, domainRepo.Create(&model.Domain{
		UUID:       "00000001-0000-0000-0000-000000000000",
		Identifier: "domain1",
		Version:    "v1",
	}))
	require.NoError(t, tx.Commit())

	readTx := store.Txn(false)
	domain, err := repo.NewDomainRepository(readTx).GetByID("00000001-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, "domain1", domain.Identifier)
}

func Test_AbortDiscardsChanges(t *testing.T) {
	store := testStore(t)

	tx := store.Txn(true)
	require.NoError(t, repo.NewDomainRepository(tx).Create(&model.Domain{
		UUID:       "00000001-0000-0000-0000-000000000000",
		Identifier: "domain1",
		Version:    "v1",
	}))
	tx.Abort()

	readTx := store.Txn(false)
	_, err := repo.NewDomainRepository(readTx).GetByID("00000001-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
