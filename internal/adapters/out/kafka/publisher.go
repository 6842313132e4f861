// Package kafka publishes relayed outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"strings"

	"salesorder/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventName = "event-name"
	HeaderEventID   = "event-id"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes every message keyed by its aggregate id, so events of one
// order land on one partition in outbox order.
type Publisher struct {
	writer messageWriter
}

// ParseBrokers splits a comma separated broker list and drops empty entries.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter creates a writer for topic. Messages with the same key go to the
// same partition.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewPublisher wraps writer.
func NewPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes messages in one batch and returns once the brokers acknowledged them.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.CreatedAt.UTC(),
			Headers: []kafka.Header{
				{Key: HeaderEventName, Value: []byte(m.Name)},
				{Key: HeaderEventID, Value: []byte(m.EventID.String())},
			},
		})
	}

	return p.writer.WriteMessages(ctx, batch...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
