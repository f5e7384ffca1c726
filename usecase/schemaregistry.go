package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"sigs.k8s.io/yaml"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/repo"
	"github.com/flant/identity-core/uuid"
)

type RegisterSchemaParams struct {
	Provider string
	Category model.ResourceCategory
	// Content is an OpenAPI object schema in YAML or JSON
	Content string
}

// SchemaRegistryService manages provider-registered data schemas within
// one domain. Updates must stay backwards compatible so that already
// persisted payloads keep validating.
type SchemaRegistryService struct {
	domainUUID model.DomainUUID

	repo *repo.ProviderSchemaRepository
}

func SchemaRegistry(db *io.MemoryStoreTxn, domainUUID model.DomainUUID) *SchemaRegistryService {
	return &SchemaRegistryService{
		domainUUID: domainUUID,
		repo:       repo.NewProviderSchemaRepository(db),
	}
}

func (s *SchemaRegistryService) Register(params RegisterSchemaParams) (*model.ProviderSchema, error) {
	if _, err := buildProviderSchema(params.Content); err != nil {
		return nil, err
	}

	registered := &model.ProviderSchema{
		UUID:       uuid.New(),
		Provider:   params.Provider,
		DomainUUID: s.domainUUID,
		Category:   params.Category,
		Content:    params.Content,
		Version:    model.NewResourceVersion(),
	}
	if err := s.repo.Create(registered); err != nil {
		if errors.Is(err, memdb.ErrUniqueConstraint) {
			return nil, fmt.Errorf("%w: schema for provider %q category %q",
				model.ErrAlreadyExists, params.Provider, params.Category)
		}
		return nil, err
	}
	return registered, nil
}

func (s *SchemaRegistryService) Update(id model.ProviderSchemaUUID, content string) (*model.ProviderSchema, error) {
	stored, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stored.DomainUUID != s.domainUUID {
		return nil, model.ErrNotFound
	}
	if err := checkBackwardsCompatibility(stored.Content, content); err != nil {
		return nil, err
	}

	updated := *stored
	updated.Content = content
	updated.Version = model.NewResourceVersion()
	if err := s.repo.Update(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SchemaRegistryService) Delete(id model.ProviderSchemaUUID) error {
	stored, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if stored.DomainUUID != s.domainUUID {
		return model.ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *SchemaRegistryService) Get(provider string, category model.ResourceCategory) (*model.ProviderSchema, error) {
	return s.repo.Get(s.domainUUID, provider, category)
}

func (s *SchemaRegistryService) List() ([]*model.ProviderSchema, error) {
	return s.repo.List(s.domainUUID)
}

// buildProviderSchema checks the content is a well-formed OpenAPI schema.
func buildProviderSchema(content string) (*openapi3.Schema, error) {
	if content == "" {
		return &openapi3.Schema{}, nil
	}
	jsonContent, err := yaml.YAMLToJSON([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("schema content to json: %w", err)
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(jsonContent, &schema); err != nil {
		return nil, fmt.Errorf("schema content unmarshalling: %w", err)
	}
	if err := schema.Validate(context.TODO()); err != nil {
		return nil, fmt.Errorf("schema content validation: %w", err)
	}
	return &schema, nil
}

// checkBackwardsCompatibility checks that the new schema doesn't demand
// new required fields and doesn't change old types and formats.
func checkBackwardsCompatibility(oldContent, newContent string) error {
	if oldContent == newContent {
		return nil
	}
	oldSchema, err := buildProviderSchema(oldContent)
	if err != nil {
		return err
	}
	newSchema, err := buildProviderSchema(newContent)
	if err != nil {
		return err
	}
	if err = checkRequired(oldSchema.Required, newSchema.Required); err != nil {
		return fmt.Errorf("check schema backwards compatibility: %w", err)
	}
	if err = checkPropertyTypes(oldSchema.Properties, newSchema.Properties); err != nil {
		return fmt.Errorf("check schema backwards compatibility: %w", err)
	}
	return nil
}

func checkRequired(oldRequireds []string, newRequireds []string) error {
	if len(newRequireds) > len(oldRequireds) {
		return fmt.Errorf("new schema has more required properties than old one")
	}
	for _, newRequired := range newRequireds {
		exists := false
		for _, oldRequired := range oldRequireds {
			if newRequired == oldRequired {
				exists = true
				break
			}
		}
		if !exists {
			return fmt.Errorf("property %q in new schema required is new, it is forbidden", newRequired)
		}
	}
	return nil
}

func checkPropertyTypes(oldProperties openapi3.Schemas, newProperties openapi3.Schemas) error {
	if len(oldProperties) > len(newProperties) {
		return fmt.Errorf("new schema has less described properties than old one")
	}

	for name, oldProperty := range oldProperties {
		newProperty, exists := newProperties[name]
		if !exists {
			return fmt.Errorf("property %q is not presented in new schema, it is forbidden", name)
		}
		if newProperty.Value.Type != oldProperty.Value.Type {
			return fmt.Errorf("property %q has changed type in new schema, it is forbidden", name)
		}
		if newProperty.Value.Format != oldProperty.Value.Format {
			return fmt.Errorf("property %q has changed format in new schema, it is forbidden", name)
		}
		if newProperty.Value.Pattern != oldProperty.Value.Pattern {
			return fmt.Errorf("property %q has changed pattern in new schema, it is forbidden", name)
		}
	}
	return nil
}
