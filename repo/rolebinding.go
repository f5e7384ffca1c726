package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func RoleBindingSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.RoleBindingType: {
				Name: model.RoleBindingType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					PrincipalForeignPK: {
						Name: PrincipalForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "PrincipalUUID",
						},
					},
					RoleForeignPK: {
						Name: RoleForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "RoleUUID",
						},
					},
					ScopeForeignPK: {
						Name: ScopeForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "ScopeUUID",
						},
					},
					DomainForeignPK: {
						Name: DomainForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "DomainUUID",
						},
					},
					"grant": {
						Name: "grant",
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "PrincipalUUID"},
								&hcmemdb.StringFieldIndex{Field: "RoleUUID"},
								&hcmemdb.StringFieldIndex{Field: "ScopeUUID"},
							},
						},
					},
				},
			},
		},
		// PrincipalUUID is polymorphic (user or service account) and
		// ScopeUUID addresses one of three scope tables, so neither can
		// carry a mandatory foreign key
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.RoleBindingType: {
				{OriginalDataTypeFieldName: "RoleUUID", RelatedDataType: model.RoleObjectType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.RoleBindingType: {"grant"},
		},
	}
}

type RoleBindingRepository struct {
	db *io.MemoryStoreTxn
}

func NewRoleBindingRepository(tx *io.MemoryStoreTxn) *RoleBindingRepository {
	return &RoleBindingRepository{db: tx}
}

func (r *RoleBindingRepository) save(rb *model.RoleBinding) error {
	return r.db.Insert(model.RoleBindingType, rb)
}

func (r *RoleBindingRepository) Create(rb *model.RoleBinding) error {
	return r.save(rb)
}

func (r *RoleBindingRepository) GetByID(id model.RoleBindingUUID) (*model.RoleBinding, error) {
	raw, err := r.db.First(model.RoleBindingType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.RoleBinding), nil
}

func (r *RoleBindingRepository) Delete(id model.RoleBindingUUID) error {
	rb, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.RoleBindingType, rb)
}

// ListForPrincipal returns all bindings granted to one principal.
func (r *RoleBindingRepository) ListForPrincipal(principalUUID model.PrincipalUUID) ([]*model.RoleBinding, error) {
	iter, err := r.db.Get(model.RoleBindingType, PrincipalForeignPK, principalUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.RoleBinding{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.RoleBinding))
	}
	return list, nil
}
