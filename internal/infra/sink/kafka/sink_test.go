package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewSink(t *testing.T) {
	t.Run("configures a hash-balanced writer for the topic", func(t *testing.T) {
		s := NewSink([]string{"localhost:9092"}, "transactions")

		w, ok := s.writer.(*kafka.Writer)
		require.True(t, ok)
		assert.Equal(t, "transactions", w.Topic)
		assert.Equal(t, "localhost:9092", w.Addr.String())
		assert.IsType(t, &kafka.Hash{}, w.Balancer)
		assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
		assert.Equal(t, []byte("transactions"), s.key)
	})

	t.Run("uses the configured stream key", func(t *testing.T) {
		s := NewSink([]string{"localhost:9092"}, "transactions", WithStreamKey("mainnet"))
		assert.Equal(t, []byte("mainnet"), s.key)
	})

	t.Run("keeps the topic as key when the stream key is empty", func(t *testing.T) {
		s := NewSink([]string{"localhost:9092"}, "transactions", WithStreamKey(""))
		assert.Equal(t, []byte("transactions"), s.key)
	})
}

func TestEmit(t *testing.T) {
	publishedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tx := txfeed.Transaction{
		Currency:    "BTC",
		Hash:        "t1",
		Block:       100,
		To:          []string{"a1", "a2"},
		Amount:      decimal.RequireFromString("0.00000001"),
		Fee:         decimal.Zero,
		FeeCurrency: "BTC",
		Type:        txfeed.TypeReceive,
	}

	t.Run("publishes the transaction under the stream key", func(t *testing.T) {
		w := &fakeWriter{}
		s := &sink{topic: "transactions", key: []byte("transactions"), writer: w, now: func() time.Time { return publishedAt }}

		require.NoError(t, s.Emit(t.Context(), tx))
		require.Len(t, w.messages, 1)

		msg := w.messages[0]
		assert.Equal(t, []byte("transactions"), msg.Key)
		assert.Equal(t, []kafka.Header{{Key: "tx.hash", Value: []byte("t1")}}, msg.Headers)
		assert.JSONEq(t, `{
			"type": "transaction",
			"time": "2026-01-02T03:04:05Z",
			"data": {
				"currency": "BTC",
				"hash": "t1",
				"block": 100,
				"from": "",
				"to": ["a1", "a2"],
				"amount": "0.00000001",
				"fee": "0",
				"fee_currency": "BTC",
				"type": "receive"
			}
		}`, string(msg.Value))

		var decoded envelope
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.True(t, decoded.Data.Amount.Equal(tx.Amount))
	})

	t.Run("keys every transaction of the stream alike", func(t *testing.T) {
		w := &fakeWriter{}
		s := &sink{topic: "transactions", key: []byte("transactions"), writer: w, now: time.Now}

		second := tx
		second.Hash, second.Block = "t9", 101

		require.NoError(t, s.Emit(t.Context(), tx))
		require.NoError(t, s.Emit(t.Context(), second))
		require.Len(t, w.messages, 2)
		assert.Equal(t, w.messages[0].Key, w.messages[1].Key)
	})

	t.Run("returns writer errors", func(t *testing.T) {
		writeErr := errors.New("leader not available")
		s := &sink{topic: "transactions", writer: &fakeWriter{err: writeErr}, now: time.Now}

		err := s.Emit(t.Context(), tx)
		assert.ErrorIs(t, err, writeErr)
		assert.Contains(t, err.Error(), "publishing transaction t1 to transactions")
	})

	t.Run("closes the writer", func(t *testing.T) {
		w := &fakeWriter{}
		s := &sink{writer: w}

		require.NoError(t, s.Close())
		assert.True(t, w.closed)
	})
}
