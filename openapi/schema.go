package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"
)

// Validator interface
// need for hide implementation of openapi validation
type Validator interface {
	Validate(data interface{}) error
	// ViolatedFields returns field names from the last failed Validate call
	ViolatedFields(err error) []string
}

type validatorOpenAPI struct {
	validator *validate.SchemaValidator
}

func (v *validatorOpenAPI) Validate(data interface{}) error {
	result := v.validator.Validate(data)
	if result.IsValid() {
		return nil
	}

	var allErrs *multierror.Error
	allErrs = multierror.Append(allErrs, result.Errors...)

	return allErrs.ErrorOrNil()
}

func (v *validatorOpenAPI) ViolatedFields(err error) []string {
	merr, ok := err.(*multierror.Error)
	if !ok {
		return nil
	}
	fields := map[string]struct{}{}
	for _, e := range merr.Errors {
		if ve, ok := e.(*oaerrors.Validation); ok {
			fields[fieldName(ve.Name)] = struct{}{}
		}
	}
	result := make([]string, 0, len(fields))
	for f := range fields {
		result = append(result, f)
	}
	sort.Strings(result)
	return result
}

func fieldName(name string) string {
	name = strings.TrimPrefix(name, "(root).")
	return strings.TrimPrefix(name, ".")
}

// SchemaValidator builds a Validator from an OpenAPI object schema given
// in YAML or JSON. Unknown extra fields are rejected unless the schema
// itself allows additional properties.
func SchemaValidator(content string) (Validator, error) {
	byteContent := []byte(content)
	var parsedSchema interface{}
	if err := yaml.UnmarshalStrict(byteContent, &parsedSchema); err != nil {
		return nil, fmt.Errorf("yaml unmarshal schema: %v", err)
	}

	d, err := json.Marshal(parsedSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %v", err)
	}
	schema := new(spec.Schema)
	if err := json.Unmarshal(d, schema); err != nil {
		return nil, fmt.Errorf("json unmarshal schema: %v", err)
	}

	err = spec.ExpandSchema(schema, schema, nil)
	if err != nil {
		return nil, fmt.Errorf("expand the schema: %v", err)
	}

	if schema.AdditionalProperties == nil {
		schema.AdditionalProperties = &spec.SchemaOrBool{Allows: false}
	}

	validator := validate.NewSchemaValidator(schema, nil, "", strfmt.Default)
	return &validatorOpenAPI{validator: validator}, nil
}
