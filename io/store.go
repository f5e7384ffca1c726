package io

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	log "github.com/hashicorp/go-hclog"
	"github.com/segmentio/kafka-go"

	"github.com/flant/identity-core/memdb"
)

type MemoryStorableObject interface {
	ObjType() string
	ObjId() string
}

// Destination turns committed entity changes into outgoing messages.
type Destination interface {
	ProcessObject(tnx *memdb.Txn, obj MemoryStorableObject) ([]kafka.Message, error)
	ProcessObjectDelete(tnx *memdb.Txn, obj MemoryStorableObject) ([]kafka.Message, error)
}

type MemoryStore struct {
	*memdb.MemDB

	mutex        sync.RWMutex
	destinations []Destination
	writer       *kafka.Writer

	logger log.Logger
}

type MemoryStoreTxn struct {
	*memdb.Txn

	memstore *MemoryStore // crosslink
}

func NewMemoryStore(schema *memdb.DBSchema, writer *kafka.Writer, parentLogger log.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{
		MemDB:  db,
		writer: writer,
		logger: parentLogger.Named("MemoryStore"),
	}, nil
}

func (ms *MemoryStore) AddDestination(dest Destination) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.destinations = append(ms.destinations, dest)
}

func (ms *MemoryStore) Txn(write bool) *MemoryStoreTxn {
	return &MemoryStoreTxn{ms.MemDB.Txn(write), ms}
}

func (mst *MemoryStoreTxn) collectMessages() ([]kafka.Message, error) {
	changes := mst.Txn.Changes()

	messages := make([]kafka.Message, 0)
	mst.memstore.mutex.RLock()
	defer mst.memstore.mutex.RUnlock()
	for _, change := range changes {
		for _, dest := range mst.memstore.destinations {
			var msgs []kafka.Message
			var err error
			if change.After == nil {
				object, ok := change.Before.(MemoryStorableObject)
				if !ok {
					return nil, fmt.Errorf("object does not implement MemoryStorableObject: %s", reflect.TypeOf(change.Before))
				}
				msgs, err = dest.ProcessObjectDelete(mst.Txn, object)
			} else {
				object, ok := change.After.(MemoryStorableObject)
				if !ok {
					return nil, fmt.Errorf("object does not implement MemoryStorableObject: %s", reflect.TypeOf(change.After))
				}
				msgs, err = dest.ProcessObject(mst.Txn, object)
			}
			if err != nil {
				return nil, err
			}
			messages = append(messages, msgs...)
		}
	}
	return messages, nil
}

func (mst *MemoryStoreTxn) Commit() error {
	messages, err := mst.collectMessages()
	if err != nil {
		mst.memstore.logger.Error("transaction aborted", "err", err)
		mst.Txn.Abort()
		return err
	}

	if mst.memstore.writer != nil && len(messages) > 0 {
		if err := mst.memstore.writer.WriteMessages(context.Background(), messages...); err != nil {
			mst.memstore.logger.Error("transaction aborted: writing messages", "err", err)
			mst.Txn.Abort()
			return err
		}
	}

	mst.Txn.Commit()
	return nil
}

func (mst *MemoryStoreTxn) Abort() {
	mst.Txn.Abort()
}
