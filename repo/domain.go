package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func DomainSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.DomainType: {
				Name: model.DomainType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					"identifier": {
						Name:   "identifier",
						Unique: true,
						Indexer: &hcmemdb.StringFieldIndex{
							Field:     "Identifier",
							Lowercase: true,
						},
					},
				},
			},
		},
		CascadeDeletes: map[string][]memdb.Relation{
			model.DomainType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.WorkspaceType, RelatedDataTypeFieldIndexName: DomainForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.UserType, RelatedDataTypeFieldIndexName: DomainForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.ProviderSchemaType, RelatedDataTypeFieldIndexName: DomainForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: DomainForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.DomainType: {"identifier"},
		},
	}
}

type DomainRepository struct {
	db *io.MemoryStoreTxn
}

func NewDomainRepository(tx *io.MemoryStoreTxn) *DomainRepository {
	return &DomainRepository{db: tx}
}

func (r *DomainRepository) save(domain *model.Domain) error {
	return r.db.Insert(model.DomainType, domain)
}

func (r *DomainRepository) Create(domain *model.Domain) error {
	return r.save(domain)
}

func (r *DomainRepository) GetByID(id model.DomainUUID) (*model.Domain, error) {
	raw, err := r.db.First(model.DomainType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Domain), nil
}

func (r *DomainRepository) Update(domain *model.Domain) error {
	_, err := r.GetByID(domain.UUID)
	if err != nil {
		return err
	}
	return r.save(domain)
}

func (r *DomainRepository) Delete(id model.DomainUUID) error {
	domain, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.CascadeDelete(model.DomainType, domain)
}

func (r *DomainRepository) List() ([]*model.Domain, error) {
	iter, err := r.db.Get(model.DomainType, PK)
	if err != nil {
		return nil, err
	}
	list := []*model.Domain{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Domain))
	}
	return list, nil
}
