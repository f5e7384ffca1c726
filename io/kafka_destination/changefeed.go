package kafka_destination

import (
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/flant/identity-core/io"
	"github.com/flant/identity-core/memdb"
	"github.com/flant/identity-core/model"
)

// ChangefeedDestination publishes every committed entity mutation into
// one topic. Secret material never leaves the store: payloads are
// marshalled with sensitive fields stripped.
type ChangefeedDestination struct {
	topic string
}

func NewChangefeedDestination(topic string) *ChangefeedDestination {
	return &ChangefeedDestination{topic: topic}
}

func (d *ChangefeedDestination) ProcessObject(_ *memdb.Txn, obj io.MemoryStorableObject) ([]kafka.Message, error) {
	data, err := model.Marshal(obj, false)
	if err != nil {
		return nil, err
	}
	return []kafka.Message{objectMessage(d.topic, obj, data)}, nil
}

func (d *ChangefeedDestination) ProcessObjectDelete(_ *memdb.Txn, obj io.MemoryStorableObject) ([]kafka.Message, error) {
	// nil value marks deletion
	return []kafka.Message{objectMessage(d.topic, obj, nil)}, nil
}

func objectMessage(topic string, obj io.MemoryStorableObject, data []byte) kafka.Message {
	return kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("%s/%s", obj.ObjType(), obj.ObjId())),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(obj.ObjType())},
		},
		Time: time.Time{},
	}
}
