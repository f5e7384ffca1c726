package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flant/identity-core/fixtures"
	"github.com/flant/identity-core/model"
)

func Test_ResolveAncestors(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture)
	hierarchy := NewScopeHierarchy(store.Txn(false))

	chain, err := hierarchy.ResolveAncestors(model.ProjectScope(fixtures.ProjectUUID1))
	require.NoError(t, err)
	assert.Equal(t, Ancestry{
		DomainUUID:    fixtures.DomainUUID1,
		WorkspaceUUID: fixtures.WorkspaceUUID1,
		ProjectUUID:   fixtures.ProjectUUID1,
	}, chain)

	chain, err = hierarchy.ResolveAncestors(model.WorkspaceScope(fixtures.WorkspaceUUID2))
	require.NoError(t, err)
	assert.Equal(t, Ancestry{
		DomainUUID:    fixtures.DomainUUID1,
		WorkspaceUUID: fixtures.WorkspaceUUID2,
	}, chain)

	_, err = hierarchy.ResolveAncestors(model.ProjectScope("99999999-0000-0000-0000-000000000000"))
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func Test_IsDescendantOrEqual(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture)
	hierarchy := NewScopeHierarchy(store.Txn(false))

	cases := []struct {
		name      string
		candidate model.Scope
		ancestor  model.Scope
		expected  bool
	}{
		{"scope equals itself", model.WorkspaceScope(fixtures.WorkspaceUUID1), model.WorkspaceScope(fixtures.WorkspaceUUID1), true},
		{"project under its workspace", model.ProjectScope(fixtures.ProjectUUID1), model.WorkspaceScope(fixtures.WorkspaceUUID1), true},
		{"project under its domain", model.ProjectScope(fixtures.ProjectUUID1), model.DomainScope(fixtures.DomainUUID1), true},
		{"project under foreign workspace", model.ProjectScope(fixtures.ProjectUUID1), model.WorkspaceScope(fixtures.WorkspaceUUID2), false},
		{"workspace under foreign domain", model.WorkspaceScope(fixtures.WorkspaceUUID1), model.DomainScope(fixtures.DomainUUID2), false},
		{"domain never descends into workspace", model.DomainScope(fixtures.DomainUUID1), model.WorkspaceScope(fixtures.WorkspaceUUID1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hierarchy.IsDescendantOrEqual(tc.candidate, tc.ancestor)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func Test_CheckProjectScope(t *testing.T) {
	store := RunFixtures(t, DomainFixture, WorkspaceFixture, ProjectFixture)
	hierarchy := NewScopeHierarchy(store.Txn(false))

	err := hierarchy.CheckProjectScope(fixtures.ProjectUUID1, fixtures.WorkspaceUUID1, fixtures.DomainUUID1)
	require.NoError(t, err)

	err = hierarchy.CheckProjectScope(fixtures.ProjectUUID1, fixtures.WorkspaceUUID2, fixtures.DomainUUID1)
	assert.True(t, errors.Is(err, model.ErrScopeMismatch))

	err = hierarchy.CheckProjectScope(fixtures.ProjectUUID4, fixtures.WorkspaceUUID3, fixtures.DomainUUID1)
	assert.True(t, errors.Is(err, model.ErrScopeMismatch))
}
