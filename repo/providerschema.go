package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func ProviderSchemaSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ProviderSchemaType: {
				Name: model.ProviderSchemaType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					DomainForeignPK: {
						Name: DomainForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "DomainUUID",
						},
					},
					"binding": {
						Name: "binding",
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "DomainUUID"},
								&hcmemdb.StringFieldIndex{Field: "Provider", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "Category"},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ProviderSchemaType: {
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.ProviderSchemaType: {"binding"},
		},
	}
}

type ProviderSchemaRepository struct {
	db *io.MemoryStoreTxn
}

func NewProviderSchemaRepository(tx *io.MemoryStoreTxn) *ProviderSchemaRepository {
	return &ProviderSchemaRepository{db: tx}
}

func (r *ProviderSchemaRepository) save(s *model.ProviderSchema) error {
	return r.db.Insert(model.ProviderSchemaType, s)
}

func (r *ProviderSchemaRepository) Create(s *model.ProviderSchema) error {
	return r.save(s)
}

func (r *ProviderSchemaRepository) GetByID(id model.ProviderSchemaUUID) (*model.ProviderSchema, error) {
	raw, err := r.db.First(model.ProviderSchemaType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.ProviderSchema), nil
}

// Get resolves the schema registered for the (provider, domain, category)
// triple, the lookup the data validation path relies on.
func (r *ProviderSchemaRepository) Get(domainUUID model.DomainUUID, provider string,
	category model.ResourceCategory) (*model.ProviderSchema, error) {
	raw, err := r.db.First(model.ProviderSchemaType, "binding", domainUUID, provider, string(category))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrSchemaNotFound
	}
	return raw.(*model.ProviderSchema), nil
}

func (r *ProviderSchemaRepository) Update(s *model.ProviderSchema) error {
	_, err := r.GetByID(s.UUID)
	if err != nil {
		return err
	}
	return r.save(s)
}

func (r *ProviderSchemaRepository) Delete(id model.ProviderSchemaUUID) error {
	s, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.ProviderSchemaType, s)
}

func (r *ProviderSchemaRepository) List(domainUUID model.DomainUUID) ([]*model.ProviderSchema, error) {
	iter, err := r.db.Get(model.ProviderSchemaType, DomainForeignPK, domainUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.ProviderSchema{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.ProviderSchema))
	}
	return list, nil
}
