package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const awsSchema = `
type: object
properties:
  access_key:
    type: string
  region:
    type: string
    enum:
    - eu-west-1
    - us-east-1
required:
- access_key
`

func Test_ValidPayload(t *testing.T) {
	validator, err := SchemaValidator(awsSchema)
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{
		"access_key": "AKIA1234567890ABCDEF",
		"region":     "eu-west-1",
	})

	require.NoError(t, err)
}

func Test_MissingRequiredField(t *testing.T) {
	validator, err := SchemaValidator(awsSchema)
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{"region": "eu-west-1"})

	require.Error(t, err)
	assert.Equal(t, []string{"access_key"}, validator.ViolatedFields(err))
}

func Test_WrongTypeAndEnum(t *testing.T) {
	validator, err := SchemaValidator(awsSchema)
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{
		"access_key": 42,
		"region":     "mars-north-1",
	})

	require.Error(t, err)
	fields := validator.ViolatedFields(err)
	assert.Contains(t, fields, "access_key")
	assert.Contains(t, fields, "region")
}

func Test_UnknownExtraFieldRejectedByDefault(t *testing.T) {
	validator, err := SchemaValidator(awsSchema)
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{
		"access_key": "AKIA1234567890ABCDEF",
		"surprise":   true,
	})

	require.Error(t, err)
}

func Test_PermissiveSchemaAllowsExtras(t *testing.T) {
	permissive := awsSchema + "additionalProperties: true\n"
	validator, err := SchemaValidator(permissive)
	require.NoError(t, err)

	err = validator.Validate(map[string]interface{}{
		"access_key": "AKIA1234567890ABCDEF",
		"surprise":   true,
	})

	require.NoError(t, err)
}

func Test_MalformedContent(t *testing.T) {
	_, err := SchemaValidator("type: [42")

	require.Error(t, err)
}

func Test_JSONContentAccepted(t *testing.T) {
	validator, err := SchemaValidator(`{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`)
	require.NoError(t, err)

	require.NoError(t, validator.Validate(map[string]interface{}{"name": "x"}))
	require.Error(t, validator.Validate(map[string]interface{}{}))
}
