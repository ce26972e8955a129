package notify

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// MessageWriter kafka.Writer subset, mocked in tests
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher 發布事件到 kafka topic, key 為 entity id 讓同一實體落在同一 partition
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher create KafkaPublisher
func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish write one event
func (k *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal event")
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.EntityID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
	return pkgerrors.Wrap(err, "kafka publish")
}
