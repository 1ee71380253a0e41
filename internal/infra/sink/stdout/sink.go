// Package stdout writes canonical transactions as JSON lines.
package stdout

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/txfeed/internal/txfeed"
)

type sink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// Ensure sink implements the txfeed.Sink interface at compile time.
var _ txfeed.Sink = (*sink)(nil)

// NewSink returns a Sink that writes one JSON object per line to w, or to
// os.Stdout when w is nil.
func NewSink(w io.Writer) *sink {
	if w == nil {
		w = os.Stdout
	}

	return &sink{enc: json.NewEncoder(w)}
}

// Emit implements the txfeed.Sink interface.
func (s *sink) Emit(_ context.Context, tx txfeed.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enc.Encode(tx)
}
