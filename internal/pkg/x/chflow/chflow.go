// Package chflow holds context-aware channel helpers. Every pipeline stage
// sends and receives through them so that a canceled context always unblocks
// the stage.
package chflow

import "context"

// Receive waits for a value on ch. It returns false when ctx is done first or
// when ch is closed; the value is then the zero value.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Send delivers data on ch. It returns false if ctx is done before the value
// could be sent.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}

// Drain discards every value left on ch until it is closed or ctx is done.
// It lets a consumer that stops early release producers blocked on ch.
func Drain[T any](ctx context.Context, ch <-chan T) {
	for {
		if _, ok := Receive(ctx, ch); !ok {
			return
		}
	}
}
