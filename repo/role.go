package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func RoleSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.RoleObjectType: {
				Name: model.RoleObjectType,
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
		// a role can not be deleted while bindings grant it
		CheckingRelations: map[string][]memdb.Relation{
			model.RoleObjectType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: RoleForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.RoleObjectType: {"identifier"},
		},
	}
}

type RoleRepository struct {
	db *io.MemoryStoreTxn
}

func NewRoleRepository(tx *io.MemoryStoreTxn) *RoleRepository {
	return &RoleRepository{db: tx}
}

func (r *RoleRepository) save(role *model.Role) error {
	return r.db.Insert(model.RoleObjectType, role)
}

func (r *RoleRepository) Create(role *model.Role) error {
	return r.save(role)
}

func (r *RoleRepository) GetByID(id model.RoleUUID) (*model.Role, error) {
	raw, err := r.db.First(model.RoleObjectType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Role), nil
}

func (r *RoleRepository) Update(role *model.Role) error {
	_, err := r.GetByID(role.UUID)
	if err != nil {
		return err
	}
	return r.save(role)
}

func (r *RoleRepository) Delete(id model.RoleUUID) error {
	role, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.RoleObjectType, role)
}

func (r *RoleRepository) List() ([]*model.Role, error) {
	iter, err := r.db.Get(model.RoleObjectType, PK)
	if err != nil {
		return nil, err
	}
	list := []*model.Role{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Role))
	}
	return list, nil
}
