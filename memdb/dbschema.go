package memdb

import (
	"fmt"

	hcmemdb "github.com/hashicorp/go-memdb"
)

// PK is a mandatory index for all tables at hc/go-memdb
const PK = "id"

type (
	// TableSchema synonym for replacing original type at code
	TableSchema = hcmemdb.TableSchema

	dataType  = string
	fieldName = string
	indexName = string
)

type Relation struct {
	OriginalDataTypeFieldName     fieldName
	RelatedDataType               dataType
	RelatedDataTypeFieldIndexName indexName
}

type DBSchema struct {
	Tables map[string]*TableSchema
	// checked at Insert: related record must exist
	// prohibited to use the same dataType as map key and as value in Relation.RelatedDataType
	MandatoryForeignKeys map[dataType][]Relation
	// used at CascadeDelete: related records are deleted together with the parent
	CascadeDeletes map[dataType][]Relation
	// checked at Delete and CascadeDelete: deleting fails while any of these relations is not empty
	CheckingRelations map[dataType][]Relation
	// checked at Insert: the listed indexes must not match another record
	UniqueConstraints map[dataType][]indexName
}

func (s *DBSchema) Validate() error {
	if err := (&hcmemdb.DBSchema{Tables: s.Tables}).Validate(); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	if err := s.validateExistenceIndexes(); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	for table, idxNames := range s.UniqueConstraints {
		ts, ok := s.Tables[table]
		if !ok {
			return fmt.Errorf("%w:unique constraint for absent table %q", ErrInvalidSchema, table)
		}
		for _, idxName := range idxNames {
			if _, ok := ts.Indexes[idxName]; !ok {
				return fmt.Errorf("%w:unique constraint index %q not found at table %q", ErrInvalidSchema, idxName, table)
			}
		}
	}
	return nil
}

func (s *DBSchema) validateExistenceIndexes() error {
	for _, rels := range []map[dataType][]Relation{s.MandatoryForeignKeys, s.CascadeDeletes, s.CheckingRelations} {
		for dt, rs := range rels {
			for _, r := range rs {
				ts, ok := s.Tables[r.RelatedDataType]
				if !ok {
					return fmt.Errorf("table %q, related from %q, is absent in DBSchema", r.RelatedDataType, dt)
				}
				index, ok := ts.Indexes[r.RelatedDataTypeFieldIndexName]
				if !ok {
					return fmt.Errorf("index named %q not found at table %q, passed as relation to field %q of table %q",
						r.RelatedDataTypeFieldIndexName, r.RelatedDataType, r.OriginalDataTypeFieldName, dt)
				}
				switch index.Indexer.(type) {
				case *hcmemdb.StringFieldIndex, *hcmemdb.UUIDFieldIndex:
				default:
					return fmt.Errorf("index named %q at table %q has inappropriate type (allowed: StringFieldIndex, UUIDFieldIndex)",
						r.RelatedDataTypeFieldIndexName, r.RelatedDataType)
				}
			}
		}
	}
	return nil
}

func MergeDBSchemas(schemas ...*DBSchema) (*DBSchema, error) {
	tables := map[string]*hcmemdb.TableSchema{}

	for i := range schemas {
		for name, table := range schemas[i].Tables {
			if _, found := tables[name]; found {
				return nil, fmt.Errorf("%w:table %q already there", ErrMergeSchema, name)
			}
			tables[name] = table
		}
	}

	mergeRelationsFunc := func(getRelationsFunc func(*DBSchema) map[dataType][]Relation) map[dataType][]Relation {
		allRels := map[dataType][]Relation{}
		for _, schema := range schemas {
			for name, rels := range getRelationsFunc(schema) {
				if prevRels, found := allRels[name]; found {
					rels = append(prevRels, rels...)
				}
				allRels[name] = rels
			}
		}
		return allRels
	}

	uniqueConstraints := map[dataType][]indexName{}
	for _, schema := range schemas {
		for name, idxs := range schema.UniqueConstraints {
			uniqueConstraints[name] = append(uniqueConstraints[name], idxs...)
		}
	}

	result := DBSchema{
		Tables:               tables,
		MandatoryForeignKeys: mergeRelationsFunc(func(s *DBSchema) map[dataType][]Relation { return s.MandatoryForeignKeys }),
		CascadeDeletes:       mergeRelationsFunc(func(s *DBSchema) map[dataType][]Relation { return s.CascadeDeletes }),
		CheckingRelations:    mergeRelationsFunc(func(s *DBSchema) map[dataType][]Relation { return s.CheckingRelations }),
		UniqueConstraints:    uniqueConstraints,
	}

	err := result.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w:%s", ErrMergeSchema, err.Error())
	}
	return &result, nil
}
