package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func UserSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.UserType: {
				Name: model.UserType,
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
					"identifier": {
						Name: "identifier",
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "DomainUUID"},
								&hcmemdb.StringFieldIndex{Field: "Identifier", Lowercase: true},
							},
						},
					},
					"full_identifier": {
						Name: "full_identifier",
						Indexer: &hcmemdb.StringFieldIndex{
							Field:     "FullIdentifier",
							Lowercase: true,
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.UserType: {
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		CascadeDeletes: map[string][]memdb.Relation{
			model.UserType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.APIKeyType, RelatedDataTypeFieldIndexName: UserForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: PrincipalForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.UserType: {"identifier"},
		},
	}
}

type UserRepository struct {
	db *io.MemoryStoreTxn
}

func NewUserRepository(tx *io.MemoryStoreTxn) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) save(user *model.User) error {
	return r.db.Insert(model.UserType, user)
}

func (r *UserRepository) Create(user *model.User) error {
	return r.save(user)
}

func (r *UserRepository) GetByID(id model.UserUUID) (*model.User, error) {
	raw, err := r.db.First(model.UserType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.User), nil
}

func (r *UserRepository) GetByIdentifier(domainUUID model.DomainUUID, identifier string) (*model.User, error) {
	raw, err := r.db.First(model.UserType, "identifier", domainUUID, identifier)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.User), nil
}

func (r *UserRepository) Update(user *model.User) error {
	_, err := r.GetByID(user.UUID)
	if err != nil {
		return err
	}
	return r.save(user)
}

func (r *UserRepository) Delete(id model.UserUUID) error {
	user, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.CascadeDelete(model.UserType, user)
}

func (r *UserRepository) List(domainUUID model.DomainUUID) ([]*model.User, error) {
	iter, err := r.db.Get(model.UserType, DomainForeignPK, domainUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.User{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.User))
	}
	return list, nil
}
