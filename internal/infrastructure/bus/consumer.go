package bus

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one raw message from the event topic.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Consumer reads domain events off Kafka for background workers. Each worker
// uses its own consumer group so it sees the full stream independently.
type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, logger: logger}
}

// Consume reads messages until the context is cancelled. Handler errors are
// logged and skipped; the stream keeps moving.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("failed to read message", zap.Error(err))
			continue
		}

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			c.logger.Warn("failed to handle message",
				zap.ByteString("key", msg.Key),
				zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
