package stdout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestEmit(t *testing.T) {
	t.Run("writes one JSON object per line", func(t *testing.T) {
		var buf bytes.Buffer
		s := NewSink(&buf)

		for _, hash := range []string{"t1", "t2"} {
			require.NoError(t, s.Emit(t.Context(), txfeed.Transaction{
				Currency:    "BTC",
				Hash:        hash,
				Block:       100,
				To:          []string{},
				Amount:      decimal.RequireFromString("1.5"),
				Fee:         decimal.Zero,
				FeeCurrency: "BTC",
				Type:        txfeed.TypeSend,
			}))
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{
			"currency": "BTC",
			"hash": "t1",
			"block": 100,
			"from": "",
			"to": [],
			"amount": "1.5",
			"fee": "0",
			"fee_currency": "BTC",
			"type": "send"
		}`, lines[0])
		assert.Contains(t, lines[1], `"hash":"t2"`)
	})

	t.Run("returns write errors", func(t *testing.T) {
		s := NewSink(failingWriter{})

		err := s.Emit(t.Context(), txfeed.Transaction{Hash: "t1"})
		assert.Error(t, err)
	})

	t.Run("defaults to standard output", func(t *testing.T) {
		assert.NotNil(t, NewSink(nil).enc)
	})
}
