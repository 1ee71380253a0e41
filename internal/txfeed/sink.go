package txfeed

import (
	"context"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/x/chflow"
)

// Sink is a push-only destination for canonical transactions.
//
// Sinks receive transactions in stream order and are expected to keep pace
// or buffer on their own; Forward does not buffer.
type Sink interface {
	// Emit delivers a single transaction. A non-nil error stops forwarding.
	Emit(ctx context.Context, tx Transaction) error
}

// ErrorHandler receives the error events of a stream.
type ErrorHandler func(ctx context.Context, err error)

// LogError is the default ErrorHandler: it logs the failure and lets the
// stream continue.
func LogError(ctx context.Context, err error) {
	logger.Error(ctx, "notification processing failed", "error", err)
}

// Forward pushes every transaction of events to sink, in order, and hands
// error events to onError (LogError when nil).
//
// It returns nil when the stream is closed or ctx is canceled, and the sink
// error when a delivery fails.
func Forward(ctx context.Context, events <-chan TransactionEvent, sink Sink, onError ErrorHandler) error {
	if onError == nil {
		onError = LogError
	}

	for {
		event, ok := chflow.Receive(ctx, events)
		if !ok {
			return nil
		}

		if event.Err != nil {
			onError(ctx, event.Err)
			continue
		}

		if err := sink.Emit(ctx, event.Transaction); err != nil {
			return err
		}
	}
}
