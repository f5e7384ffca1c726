package memdb

import (
	"fmt"
	"reflect"

	hcmemdb "github.com/hashicorp/go-memdb"
	"github.com/hashicorp/go-multierror"
)

var (
	ErrForeignKey       = fmt.Errorf("foreign key error")
	ErrNotEmptyRelation = fmt.Errorf("not empty relation error")
	ErrInvalidSchema    = fmt.Errorf("invalid DBSchema")
	ErrMergeSchema      = fmt.Errorf("merging DBSchema")
	ErrNotPtr           = fmt.Errorf("not pointer passed")
	ErrUniqueConstraint = fmt.Errorf("fail unique constraint")
)

type MemDB struct {
	*hcmemdb.MemDB

	schema *DBSchema
}

type Txn struct {
	*hcmemdb.Txn

	schema *DBSchema
}

type storable interface {
	ObjType() string
	ObjId() string
}

func NewMemDB(schema *DBSchema) (*MemDB, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	db, err := hcmemdb.NewMemDB(&hcmemdb.DBSchema{Tables: schema.Tables})
	if err != nil {
		return nil, err
	}
	return &MemDB{
		MemDB:  db,
		schema: schema,
	}, nil
}

func (m *MemDB) Txn(write bool) *Txn {
	mTxn := m.MemDB.Txn(write)
	if write {
		mTxn.TrackChanges()
	}
	return &Txn{Txn: mTxn, schema: m.schema}
}

// Insert provides Insert operation into memdb with checking
// UniqueConstraints and MandatoryForeignKeys
func (t *Txn) Insert(table string, objPtr interface{}) error {
	err := t.checkUniqueConstraints(table, objPtr)
	if err != nil {
		return fmt.Errorf("insert %#v: %w", objPtr, err)
	}
	err = t.checkForeignKeys(table, objPtr)
	if err != nil {
		return fmt.Errorf("insert %#v: %w", objPtr, err)
	}
	return t.Txn.Insert(table, objPtr)
}

func (t *Txn) Delete(table string, objPtr interface{}) error {
	err := t.checkCascadeDeletesAndCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	err = t.Txn.Delete(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	return nil
}

// CascadeDelete deletes the record together with all records related
// through the CascadeDeletes relations, failing if any CheckingRelation
// is still not empty
func (t *Txn) CascadeDelete(table string, objPtr interface{}) error {
	err := t.checkCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	err = t.processRelations(t.schema.CascadeDeletes[table], objPtr, t.deleteChildren, ErrNotEmptyRelation)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	err = t.Txn.Delete(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	return nil
}

func (t *Txn) checkForeignKeys(table string, objPtr interface{}) error {
	keys := t.schema.MandatoryForeignKeys[table]
	return t.processRelations(keys, objPtr, t.checkForeignKey, ErrForeignKey)
}

func (t *Txn) checkForeignKey(checkedFieldValue interface{}, key Relation) error {
	if s, ok := checkedFieldValue.(string); ok && s == "" {
		return nil // optional reference
	}
	relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, checkedFieldValue)
	if err != nil {
		return fmt.Errorf("getting related record:%w", err)
	}
	if relatedRecord == nil {
		return fmt.Errorf("FK violation: %q not found at table %q at index %q",
			checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
	}
	return nil
}

func (t *Txn) checkCascadeDeletesAndCheckingRelations(table string, objPtr interface{}) error {
	rels := append(t.schema.CascadeDeletes[table], t.schema.CheckingRelations[table]...) //nolint:gocritic
	return t.processRelations(rels, objPtr, t.checkRelationShouldBeEmpty, ErrNotEmptyRelation)
}

func (t *Txn) checkCheckingRelations(table string, objPtr interface{}) error {
	rels := t.schema.CheckingRelations[table]
	return t.processRelations(rels, objPtr, t.checkRelationShouldBeEmpty, ErrNotEmptyRelation)
}

// processRelations implements the main loop over relations: for each
// relation from relations, relationHandler is executed
func (t *Txn) processRelations(relations []Relation, objPtr interface{},
	relationHandler func(originObjectFieldValue interface{}, key Relation) error,
	relationHandlerError error) error {
	valueIface := reflect.ValueOf(objPtr)
	if valueIface.Type().Kind() != reflect.Ptr {
		return fmt.Errorf("%w:%T", ErrNotPtr, objPtr)
	}
	var allErrs *multierror.Error
	for _, key := range relations {
		field := valueIface.Elem().FieldByName(key.OriginalDataTypeFieldName)
		if !field.IsValid() {
			return fmt.Errorf("obj `%s` does not have the field `%s`", valueIface.Type(), key.OriginalDataTypeFieldName)
		}
		if err := relationHandler(field.Interface(), key); err != nil {
			allErrs = multierror.Append(allErrs, err)
		}
	}
	if err := allErrs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w:%s", relationHandlerError, err.Error())
	}
	return nil
}

func (t *Txn) checkRelationShouldBeEmpty(checkedFieldValue interface{}, key Relation) error {
	relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, checkedFieldValue)
	if err != nil {
		return fmt.Errorf("getting related record:%w", err)
	}
	if relatedRecord == nil {
		return nil
	}
	return fmt.Errorf("relation should be empty: %q found at table %q by index %q",
		checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
}

func (t *Txn) deleteChildren(parentObjectFieldValue interface{}, key Relation) error {
	for {
		relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
		if err != nil {
			return fmt.Errorf("getting related record:%w", err)
		}
		if relatedRecord == nil {
			return nil
		}
		err = t.CascadeDelete(key.RelatedDataType, relatedRecord)
		if err != nil {
			return fmt.Errorf("deleting related record: at table %q by index %q, value %q: %w",
				key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue, err)
		}
	}
}

// checkUniqueConstraints checks uniqueConstraints among other records
func (t *Txn) checkUniqueConstraints(table string, objPtr interface{}) error {
	objID := ""
	if s, isStorable := objPtr.(storable); isStorable {
		objID = s.ObjId()
	}
	for _, idxName := range t.schema.UniqueConstraints[table] {
		idx := t.schema.Tables[table].Indexes[idxName]
		vals, err := collectValsForIndexes(objPtr, idx.Indexer)
		if err != nil {
			return fmt.Errorf("collecting vals for index %s at table %s: %w", idx.Name, table, err)
		}
		err = t.checkIdxIsEmpty(table, idx.Name, vals, objID)
		if err != nil {
			return fmt.Errorf("checkUniqueConstraints: %w", err)
		}
	}
	return nil
}

func (t *Txn) checkIdxIsEmpty(table string, idxName string, vals []interface{}, savedObjID string) error {
	iter, err := t.Get(table, idxName, vals...)
	if err != nil {
		return fmt.Errorf("checkIdxIsEmpty, index: %q at table %q: %w", idxName, table, err)
	}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		if s, isStorable := raw.(storable); isStorable {
			if s.ObjId() == savedObjID { // it is replaced obj, skip
				continue
			}
		}
		return fmt.Errorf("%w: %q at table %q", ErrUniqueConstraint, idxName, table)
	}
	return nil
}

func collectValsForIndexes(objPtr interface{}, indexes ...hcmemdb.Indexer) ([]interface{}, error) {
	var vals []interface{}
	for _, idx := range indexes {
		singleFieldName := ""
		switch t := idx.(type) {
		case *hcmemdb.UUIDFieldIndex:
			singleFieldName = t.Field
		case *hcmemdb.StringFieldIndex:
			singleFieldName = t.Field
		case *hcmemdb.CompoundIndex:
			extraVals, err := collectValsForIndexes(objPtr, t.Indexes...)
			if err != nil {
				return nil, err
			}
			vals = append(vals, extraVals...)
		default:
			return nil, fmt.Errorf("index type %T is not supported for unique constraint", idx)
		}
		if singleFieldName != "" {
			field := reflect.ValueOf(objPtr).Elem().FieldByName(singleFieldName)
			// named string types must be passed to FromArgs as plain string
			if field.Kind() == reflect.String {
				vals = append(vals, field.String())
			} else {
				vals = append(vals, field.Interface())
			}
		}
	}
	return vals, nil
}
