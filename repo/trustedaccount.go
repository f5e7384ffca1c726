package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func TrustedAccountSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.TrustedAccountType: {
				Name: model.TrustedAccountType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					WorkspaceForeignPK: {
						Name: WorkspaceForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "WorkspaceUUID",
						},
					},
					"identifier": {
						Name: "identifier",
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "WorkspaceUUID"},
								&hcmemdb.StringFieldIndex{Field: "Provider", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "Identifier", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.TrustedAccountType: {
				{OriginalDataTypeFieldName: "WorkspaceUUID", RelatedDataType: model.WorkspaceType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		// a trusted account can not be deleted while service accounts
		// delegate their secrets to it
		CheckingRelations: map[string][]memdb.Relation{
			model.TrustedAccountType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.ServiceAccountType, RelatedDataTypeFieldIndexName: TrustedAccountForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.TrustedAccountType: {"identifier"},
		},
	}
}

type TrustedAccountRepository struct {
	db *io.MemoryStoreTxn
}

func NewTrustedAccountRepository(tx *io.MemoryStoreTxn) *TrustedAccountRepository {
	return &TrustedAccountRepository{db: tx}
}

func (r *TrustedAccountRepository) save(ta *model.TrustedAccount) error {
	return r.db.Insert(model.TrustedAccountType, ta)
}

func (r *TrustedAccountRepository) Create(ta *model.TrustedAccount) error {
	return r.save(ta)
}

func (r *TrustedAccountRepository) GetByID(id model.TrustedAccountUUID) (*model.TrustedAccount, error) {
	raw, err := r.db.First(model.TrustedAccountType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.TrustedAccount), nil
}

func (r *TrustedAccountRepository) Update(ta *model.TrustedAccount) error {
	_, err := r.GetByID(ta.UUID)
	if err != nil {
		return err
	}
	return r.save(ta)
}

func (r *TrustedAccountRepository) Delete(id model.TrustedAccountUUID) error {
	ta, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.TrustedAccountType, ta)
}

func (r *TrustedAccountRepository) List(workspaceUUID model.WorkspaceUUID) ([]*model.TrustedAccount, error) {
	iter, err := r.db.Get(model.TrustedAccountType, WorkspaceForeignPK, workspaceUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.TrustedAccount{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.TrustedAccount))
	}
	return list, nil
}
