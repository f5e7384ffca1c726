package usecase

import (
	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/model"
	"github.com/flant/identity-core/openapi"
	"github.com/flant/identity-core/repo"
)

// DataValidator validates entity data payloads against the provider
// schema registered for the (provider, domain, category) triple.
type DataValidator struct {
	schemaRepo *repo.ProviderSchemaRepository
}

func NewDataValidator(db *io.MemoryStoreTxn) *DataValidator {
	return &DataValidator{
		schemaRepo: repo.NewProviderSchemaRepository(db),
	}
}

func (v *DataValidator) Validate(domainUUID model.DomainUUID, provider string,
	category model.ResourceCategory, data map[string]interface{}) error {
	registered, err := v.schemaRepo.Get(domainUUID, provider, category)
	if err != nil {
		return err
	}
	validator, err := openapi.SchemaValidator(registered.Content)
	if err != nil {
		return err
	}
	if err := validator.Validate(data); err != nil {
		return &model.SchemaViolationError{
			Fields: validator.ViolatedFields(err),
			Err:    err,
		}
	}
	return nil
}
