package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func APIKeySchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.APIKeyType: {
				Name: model.APIKeyType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					UserForeignPK: {
						Name: UserForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "UserUUID",
						},
					},
					DomainForeignPK: {
						Name: DomainForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "DomainUUID",
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.APIKeyType: {
				{OriginalDataTypeFieldName: "UserUUID", RelatedDataType: model.UserType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

type APIKeyRepository struct {
	db *io.MemoryStoreTxn
}

func NewAPIKeyRepository(tx *io.MemoryStoreTxn) *APIKeyRepository {
	return &APIKeyRepository{db: tx}
}

func (r *APIKeyRepository) save(key *model.APIKey) error {
	return r.db.Insert(model.APIKeyType, key)
}

func (r *APIKeyRepository) Create(key *model.APIKey) error {
	return r.save(key)
}

func (r *APIKeyRepository) GetByID(id model.APIKeyUUID) (*model.APIKey, error) {
	raw, err := r.db.First(model.APIKeyType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.APIKey), nil
}

func (r *APIKeyRepository) Update(key *model.APIKey) error {
	_, err := r.GetByID(key.UUID)
	if err != nil {
		return err
	}
	return r.save(key)
}

func (r *APIKeyRepository) Delete(id model.APIKeyUUID) error {
	key, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.APIKeyType, key)
}

func (r *APIKeyRepository) List(userUUID model.UserUUID) ([]*model.APIKey, error) {
	iter, err := r.db.Get(model.APIKeyType, UserForeignPK, userUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.APIKey{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.APIKey))
	}
	return list, nil
}

func (r *APIKeyRepository) ListByDomain(domainUUID model.DomainUUID) ([]*model.APIKey, error) {
	iter, err := r.db.Get(model.APIKeyType, DomainForeignPK, domainUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.APIKey{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.APIKey))
	}
	return list, nil
}
