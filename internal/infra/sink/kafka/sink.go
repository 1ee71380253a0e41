// Package kafka publishes canonical transactions to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/segmentio/kafka-go"
)

const (
	// messageTypeTransaction is the envelope type of transaction messages.
	messageTypeTransaction = "transaction"

	// headerTxHash carries the transaction hash of every message.
	headerTxHash = "tx.hash"
)

// envelope is the JSON value of every published message.
type envelope struct {
	Type string             `json:"type"`
	Data txfeed.Transaction `json:"data"`
	Time time.Time          `json:"time"`
}

// writer is the subset of *kafka.Writer used by the sink.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type sink struct {
	topic  string
	key    []byte // partition key shared by every message of the stream
	writer writer
	now    func() time.Time
}

// Ensure sink implements the txfeed.Sink interface at compile time.
var _ txfeed.Sink = (*sink)(nil)

// Option customizes the sink built by NewSink.
type Option func(*sink)

// WithStreamKey sets the partition key of every message. An empty key keeps
// the default, the topic name.
func WithStreamKey(key string) Option {
	return func(s *sink) {
		if key != "" {
			s.key = []byte(key)
		}
	}
}

// NewSink returns a Sink writing to topic on brokers.
//
// Every message carries the same stream key, so the hash balancer routes the
// whole stream to a single partition and consumers read it in stream order.
// The transaction hash travels in the tx.hash header. Writes are synchronous
// and acknowledged by every in-sync replica.
func NewSink(brokers []string, topic string, opts ...Option) *sink {
	s := &sink{
		topic: topic,
		key:   []byte(topic),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchSize:    1,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Emit implements the txfeed.Sink interface.
func (s *sink) Emit(ctx context.Context, tx txfeed.Transaction) error {
	value, err := json.Marshal(envelope{
		Type: messageTypeTransaction,
		Data: tx,
		Time: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding transaction %s: %w", tx.Hash, err)
	}

	if err := s.writer.WriteMessages(ctx, kafka.Message{
		Key:     s.key,
		Value:   value,
		Headers: []kafka.Header{{Key: headerTxHash, Value: []byte(tx.Hash)}},
	}); err != nil {
		return fmt.Errorf("publishing transaction %s to %s: %w", tx.Hash, s.topic, err)
	}

	logger.Debug(ctx, "transaction published",
		"tx.hash", tx.Hash,
		"block.height", tx.Block,
		"kafka.topic", s.topic,
	)

	return nil
}

// Close flushes pending writes and closes the writer.
func (s *sink) Close() error {
	return s.writer.Close()
}
