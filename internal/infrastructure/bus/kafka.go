package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/ec-shop/internal/domain"
)

// Kafka publishes domain events to a single topic, keyed by aggregate ID so
// events for one aggregate stay ordered within a partition.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Kafka{writer: writer}
}

func (k *Kafka) Publish(ctx context.Context, events ...domain.Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID),
			Value: data,
			Time:  event.OccurredOn,
		})
	}
	return k.writer.WriteMessages(ctx, msgs...)
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
