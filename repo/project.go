package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func ProjectSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ProjectType: {
				Name: model.ProjectType,
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
								&hcmemdb.StringFieldIndex{Field: "WorkspaceUUID"},
								&hcmemdb.StringFieldIndex{Field: "Identifier", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ProjectType: {
				{OriginalDataTypeFieldName: "WorkspaceUUID", RelatedDataType: model.WorkspaceType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		CascadeDeletes: map[string][]memdb.Relation{
			model.ProjectType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.ServiceAccountType, RelatedDataTypeFieldIndexName: ProjectForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: ScopeForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.ProjectType: {"identifier"},
		},
	}
}

type ProjectRepository struct {
	db *io.MemoryStoreTxn
}

func NewProjectRepository(tx *io.MemoryStoreTxn) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

func (r *ProjectRepository) save(project *model.Project) error {
	return r.db.Insert(model.ProjectType, project)
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.save(project)
}

func (r *ProjectRepository) GetByID(id model.ProjectUUID) (*model.Project, error) {
	raw, err := r.db.First(model.ProjectType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.Project), nil
}

func (r *ProjectRepository) Update(project *model.Project) error {
	_, err := r.GetByID(project.UUID)
	if err != nil {
		return err
	}
	return r.save(project)
}

func (r *ProjectRepository) Delete(id model.ProjectUUID) error {
	project, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.CascadeDelete(model.ProjectType, project)
}

func (r *ProjectRepository) List(workspaceUUID model.WorkspaceUUID) ([]*model.Project, error) {
	iter, err := r.db.Get(model.ProjectType, WorkspaceForeignPK, workspaceUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.Project{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Project))
	}
	return list, nil
}
