package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

func ServiceAccountSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ServiceAccountType: {
				Name: model.ServiceAccountType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &hcmemdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					ProjectForeignPK: {
						Name: ProjectForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "ProjectUUID",
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
					TrustedAccountForeignPK: {
						Name:         TrustedAccountForeignPK,
						AllowMissing: true,
						Indexer: &hcmemdb.StringFieldIndex{
							Field: "TrustedAccountUUID",
						},
					},
					"identifier": {
						Name: "identifier",
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "ProjectUUID"},
								&hcmemdb.StringFieldIndex{Field: "Provider", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "Identifier", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ServiceAccountType: {
				{OriginalDataTypeFieldName: "ProjectUUID", RelatedDataType: model.ProjectType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "WorkspaceUUID", RelatedDataType: model.WorkspaceType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "DomainUUID", RelatedDataType: model.DomainType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "TrustedAccountUUID", RelatedDataType: model.TrustedAccountType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		CascadeDeletes: map[string][]memdb.Relation{
			model.ServiceAccountType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.RoleBindingType, RelatedDataTypeFieldIndexName: PrincipalForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.ServiceAccountType: {"identifier"},
		},
	}
}

type ServiceAccountRepository struct {
	db *io.MemoryStoreTxn
}

func NewServiceAccountRepository(tx *io.MemoryStoreTxn) *ServiceAccountRepository {
	return &ServiceAccountRepository{db: tx}
}

func (r *ServiceAccountRepository) save(sa *model.ServiceAccount) error {
	return r.db.Insert(model.ServiceAccountType, sa)
}

func (r *ServiceAccountRepository) Create(sa *model.ServiceAccount) error {
	return r.save(sa)
}

func (r *ServiceAccountRepository) GetByID(id model.ServiceAccountUUID) (*model.ServiceAccount, error) {
	raw, err := r.db.First(model.ServiceAccountType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw.(*model.ServiceAccount), nil
}

func (r *ServiceAccountRepository) Update(sa *model.ServiceAccount) error {
	_, err := r.GetByID(sa.UUID)
	if err != nil {
		return err
	}
	return r.save(sa)
}

func (r *ServiceAccountRepository) Delete(id model.ServiceAccountUUID) error {
	sa, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.db.CascadeDelete(model.ServiceAccountType, sa)
}

func (r *ServiceAccountRepository) List(projectUUID model.ProjectUUID) ([]*model.ServiceAccount, error) {
	return r.list(ProjectForeignPK, projectUUID)
}

func (r *ServiceAccountRepository) ListByWorkspace(workspaceUUID model.WorkspaceUUID) ([]*model.ServiceAccount, error) {
	return r.list(WorkspaceForeignPK, workspaceUUID)
}

func (r *ServiceAccountRepository) ListByDomain(domainUUID model.DomainUUID) ([]*model.ServiceAccount, error) {
	return r.list(DomainForeignPK, domainUUID)
}

func (r *ServiceAccountRepository) ListByTrustedAccount(trustedAccountUUID model.TrustedAccountUUID) ([]*model.ServiceAccount, error) {
	return r.list(TrustedAccountForeignPK, trustedAccountUUID)
}

func (r *ServiceAccountRepository) list(index string, value string) ([]*model.ServiceAccount, error) {
	iter, err := r.db.Get(model.ServiceAccountType, index, value)
	if err != nil {
		return nil, err
	}
	list := []*model.ServiceAccount{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.ServiceAccount))
	}
	return list, nil
}
