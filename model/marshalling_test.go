package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func Test_MarshalStripsSensitiveFields(t *testing.T) {
	sa := &ServiceAccount{
		UUID:       "00000071-0000-0000-0000-000000000000",
		Identifier: "sa1",
		Provider:   "aws",
		Data:       map[string]interface{}{"access_key": "AKIA"},
		SecretData: map[string]interface{}{"secret_key": "s3cr3t"},
	}

	data, err := Marshal(sa, false)
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(data, "secret_data").Exists())
	assert.Equal(t, "AKIA", gjson.GetBytes(data, "data.access_key").String())

	withSecrets, err := Marshal(sa, true)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", gjson.GetBytes(withSecrets, "secret_data.secret_key").String())
}

func Test_RoleGrants(t *testing.T) {
	cases := []struct {
		name        string
		permissions []PermissionName
		required    PermissionName
		expected    bool
	}{
		{"exact match", []PermissionName{"identity:ServiceAccount.write"}, "identity:ServiceAccount.write", true},
		{"wildcard namespace", []PermissionName{"identity:*"}, "identity:ServiceAccount.write", true},
		{"wildcard entity", []PermissionName{"identity:ServiceAccount.*"}, "identity:ServiceAccount.read", true},
		{"other namespace", []PermissionName{"billing:*"}, "identity:ServiceAccount.write", false},
		{"read does not cover write", []PermissionName{"identity:ServiceAccount.read"}, "identity:ServiceAccount.write", false},
		{"no permissions", nil, "identity:ServiceAccount.write", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role := Role{Permissions: tc.permissions}
			assert.Equal(t, tc.expected, role.Grants(tc.required))
		})
	}
}
