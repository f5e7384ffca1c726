package memdb

import (
	"errors"
	"testing"

	hcmemdb "github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parent struct {
	UUID       string
	Identifier string
}

func (p *parent) ObjType() string { return "parent" }
func (p *parent) ObjId() string   { return p.UUID }

type child struct {
	UUID       string
	ParentUUID string
}

func (c *child) ObjType() string { return "child" }
func (c *child) ObjId() string   { return c.UUID }

type guard struct {
	UUID       string
	ParentUUID string
}

func (g *guard) ObjType() string { return "guard" }
func (g *guard) ObjId() string   { return g.UUID }

func testSchema() *DBSchema {
	return &DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			"parent": {
				Name: "parent",
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					"identifier": {
						Name:    "identifier",
						Indexer: &hcmemdb.StringFieldIndex{Field: "Identifier"},
					},
				},
			},
			"child": {
				Name: "child",
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					"parent_uuid": {
						Name:    "parent_uuid",
						Indexer: &hcmemdb.StringFieldIndex{Field: "ParentUUID"},
					},
				},
			},
			"guard": {
				Name: "guard",
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					"parent_uuid": {
						Name:    "parent_uuid",
						Indexer: &hcmemdb.StringFieldIndex{Field: "ParentUUID"},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]Relation{
			"child": {
				{OriginalDataTypeFieldName: "ParentUUID", RelatedDataType: "parent", RelatedDataTypeFieldIndexName: PK},
			},
		},
		CascadeDeletes: map[string][]Relation{
			"parent": {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: "child", RelatedDataTypeFieldIndexName: "parent_uuid"},
			},
		},
		CheckingRelations: map[string][]Relation{
			"parent": {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: "guard", RelatedDataTypeFieldIndexName: "parent_uuid"},
			},
		},
		UniqueConstraints: map[string][]string{
			"parent": {"identifier"},
		},
	}
}

const (
	parentUUID1 = "10000000-0000-0000-0000-000000000000"
	parentUUID2 = "20000000-0000-0000-0000-000000000000"
	childUUID1  = "30000000-0000-0000-0000-000000000000"
	childUUID2  = "40000000-0000-0000-0000-000000000000"
	guardUUID1  = "50000000-0000-0000-0000-000000000000"
)

func testDB(t *testing.T) *MemDB {
	db, err := NewMemDB(testSchema())
	require.NoError(t, err)
	return db
}

func Test_InsertChecksForeignKeys(t *testing.T) {
	txn := testDB(t).Txn(true)

	err := txn.Insert("child", &child{UUID: childUUID1, ParentUUID: parentUUID1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForeignKey))
}

func Test_InsertWithSatisfiedForeignKey(t *testing.T) {
	txn := testDB(t).Txn(true)

	require.NoError(t, txn.Insert("parent", &parent{UUID: parentUUID1, Identifier: "p1"}))
	require.NoError(t, txn.Insert("child", &child{UUID: childUUID1, ParentUUID: parentUUID1}))
}

func Test_InsertChecksUniqueConstraints(t *testing.T) {
	txn := testDB(t).Txn(true)
	require.NoError(t, txn.Insert("parent", &parent{UUID: parentUUID1, Identifier: "p1"}))

	err := txn.Insert("parent", &parent{UUID: parentUUID2, Identifier: "p1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniqueConstraint))
}

func Test_ReplacingSameRecordKeepsUniqueConstraint(t *testing.T) {
	txn := testDB(t).Txn(true)
	require.NoError(t, txn.Insert("parent", &parent{UUID: parentUUID1, Identifier: "p1"}))

	// same id, same natural key: an update, not a conflict
	require.NoError(t, txn.Insert("parent", &parent{UUID: parentUUID1, Identifier: "p1"}))
}

func Test_DeleteBlockedByRelations(t *testing.T) {
	txn := testDB(t).Txn(true)
	p := &parent{UUID: parentUUID1, Identifier: "p1"}
	require.NoError(t, txn.Insert("parent", p))
	require.NoError(t, txn.Insert("child", &child{UUID: childUUID1, ParentUUID: parentUUID1}))

	err := txn.Delete("parent", p)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEmptyRelation))
}

func Test_CascadeDeleteRemovesChildren(t *testing.T) {
	txn := testDB(t).Txn(true)
	p := &parent{UUID: parentUUID1, Identifier: "p1"}
	require.NoError(t, txn.Insert("parent", p))
	require.NoError(t, txn.Insert("child", &child{UUID: childUUID1, ParentUUID: parentUUID1}))
	require.NoError(t, txn.Insert("child", &child{UUID: childUUID2, ParentUUID: parentUUID1}))

	require.NoError(t, txn.CascadeDelete("parent", p))

	raw, err := txn.First("child", "parent_uuid", parentUUID1)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func Test_CascadeDeleteBlockedByCheckingRelation(t *testing.T) {
	txn := testDB(t).Txn(true)
	p := &parent{UUID: parentUUID1, Identifier: "p1"}
	require.NoError(t, txn.Insert("parent", p))
	require.NoError(t, txn.Insert("guard", &guard{UUID: guardUUID1, ParentUUID: parentUUID1}))

	err := txn.CascadeDelete("parent", p)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEmptyRelation))
}

func Test_EmptyStringForeignKeyIsOptional(t *testing.T) {
	schema := testSchema()
	schema.MandatoryForeignKeys["guard"] = []Relation{
		{OriginalDataTypeFieldName: "ParentUUID", RelatedDataType: "parent", RelatedDataTypeFieldIndexName: PK},
	}
	schema.Tables["guard"].Indexes["parent_uuid"].AllowMissing = true
	db, err := NewMemDB(schema)
	require.NoError(t, err)
	txn := db.Txn(true)

	require.NoError(t, txn.Insert("guard", &guard{UUID: guardUUID1, ParentUUID: ""}))
}

func Test_MergeDBSchemasRejectsDuplicateTables(t *testing.T) {
	_, err := MergeDBSchemas(testSchema(), testSchema())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMergeSchema))
}
