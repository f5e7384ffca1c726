package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func WorkspaceSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.WorkspaceType: {
				Name: model.WorkspaceType,
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
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.WorkspaceType: {
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		CascadeDeletes: map[string][]memdb.Relation{
			model.WorkspaceType: {
				// projects go first so that service accounts referencing
				// trusted accounts are gone before trusted accounts
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.ProjectType, RelatedDataTypeFieldIndexName: WorkspaceForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.TrustedAccountType, RelatedDataTypeFieldIndexName: WorkspaceForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: ScopeForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.WorkspaceType: {"identifier"},
		},
	}
}

type WorkspaceRepository struct {
	db *io.MemoryStoreTxn
}

func NewWorkspaceRepository(tx *io.MemoryStoreTxn) *WorkspaceRepository {
	return &WorkspaceRepository{db: tx}
}

func (r *WorkspaceRepository) save(ws *model.Workspace) error {
	return r.db.Insert(model.WorkspaceType, ws)
}

func (r *WorkspaceRepository) Create(ws *model.Workspace) error {
	return r.save(ws)
}

func (r *WorkspaceRepository) GetByID(id model.WorkspaceUUID) (*model.Workspace, error) {
	raw, err := r.db.First(model.WorkspaceType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Workspace), nil
}

func (r *WorkspaceRepository) Update(ws *model.Workspace) error {
	_, err := r.GetByID(ws.UUID)
	if err != nil {
		return err
	}
	return r.save(ws)
}

func (r *WorkspaceRepository) Delete(id model.WorkspaceUUID) error {
	ws, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.CascadeDelete(model.WorkspaceType, ws)
}

func (r *WorkspaceRepository) List(domainUUID model.DomainUUID) ([]*model.Workspace, error) {
	iter, err := r.db.Get(model.WorkspaceType, DomainForeignPK, domainUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.Workspace{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Workspace))
	}
	return list, nil
}
