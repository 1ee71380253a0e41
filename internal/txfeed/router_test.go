package txfeed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqs(results []notificationResult) []uint64 {
	out := make([]uint64, 0, len(results))
	for _, r := range results {
		out = append(out, r.seq)
	}
	return out
}

func TestReorderBuffer(t *testing.T) {
	t.Run("releases results that arrive in order immediately", func(t *testing.T) {
		b := newReorderBuffer()

		assert.Equal(t, []uint64{0}, seqs(b.push(notificationResult{seq: 0})))
		assert.Equal(t, []uint64{1}, seqs(b.push(notificationResult{seq: 1})))
	})

	t.Run("holds results until the gap is filled", func(t *testing.T) {
		b := newReorderBuffer()

		assert.Empty(t, b.push(notificationResult{seq: 2}))
		assert.Empty(t, b.push(notificationResult{seq: 1}))
		assert.Equal(t, []uint64{0, 1, 2}, seqs(b.push(notificationResult{seq: 0})))
		assert.Empty(t, b.pending)
		assert.Equal(t, uint64(3), b.next)
	})

	t.Run("keeps later results pending behind a new gap", func(t *testing.T) {
		b := newReorderBuffer()

		assert.Empty(t, b.push(notificationResult{seq: 1}))
		assert.Empty(t, b.push(notificationResult{seq: 3}))
		assert.Equal(t, []uint64{0, 1}, seqs(b.push(notificationResult{seq: 0})))
		assert.Len(t, b.pending, 1)
		assert.Equal(t, []uint64{2, 3}, seqs(b.push(notificationResult{seq: 2})))
	})
}

func TestEmitResult(t *testing.T) {
	t.Run("emits one event per transaction", func(t *testing.T) {
		eventsCh := make(chan TransactionEvent, 2)

		ok := emitResult(t.Context(), notificationResult{
			transactions: []Transaction{{Hash: "t1"}, {Hash: "t2"}},
		}, eventsCh)
		require.True(t, ok)
		close(eventsCh)

		var got []string
		for event := range eventsCh {
			assert.NoError(t, event.Err)
			got = append(got, event.Transaction.Hash)
		}
		assert.Equal(t, []string{"t1", "t2"}, got)
	})

	t.Run("emits a single error event for a failed result", func(t *testing.T) {
		eventsCh := make(chan TransactionEvent, 2)
		resultErr := errors.New("failed")

		ok := emitResult(t.Context(), notificationResult{err: resultErr}, eventsCh)
		require.True(t, ok)
		close(eventsCh)

		events := make([]TransactionEvent, 0, 1)
		for event := range eventsCh {
			events = append(events, event)
		}
		require.Len(t, events, 1)
		assert.ErrorIs(t, events[0].Err, resultErr)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		ok := emitResult(ctx, notificationResult{transactions: []Transaction{{Hash: "t1"}}}, make(chan TransactionEvent))
		assert.False(t, ok)
	})
}
