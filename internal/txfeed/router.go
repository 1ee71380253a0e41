package txfeed

import (
	"context"
	"fmt"
	"sync"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/x/chflow"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// eventChannelBufferSize is the buffer of the channel returned by Subscribe.
const eventChannelBufferSize = 64

// notificationResult is the outcome of handling one notification, tagged with
// its arrival sequence number.
type notificationResult struct {
	seq          uint64
	transactions []Transaction
	err          error
}

// reorderBuffer holds completed results until every result with a lower
// sequence number has been released.
type reorderBuffer struct {
	next    uint64                        // sequence number of the next result to release
	pending map[uint64]notificationResult // completed results waiting for their turn
}

func newReorderBuffer() *reorderBuffer {
	return &reorderBuffer{pending: make(map[uint64]notificationResult)}
}

// push stores r and returns, in sequence order, every result that can now be
// released. The returned slice is empty while an earlier result is missing.
func (b *reorderBuffer) push(r notificationResult) []notificationResult {
	b.pending[r.seq] = r

	var ready []notificationResult
	for {
		next, ok := b.pending[b.next]
		if !ok {
			return ready
		}

		delete(b.pending, b.next)
		ready = append(ready, next)
		b.next++
	}
}

// handleNotification runs the subscription handler for a single notification.
// Source-reported failures become the result error unchanged in meaning.
func (s *service) handleNotification(ctx context.Context, sub subscription, seq uint64, n Notification) notificationResult {
	result := notificationResult{seq: seq}
	if n.Err != nil {
		result.err = fmt.Errorf("receiving %s notification: %w", sub.topic, n.Err)
	} else {
		result.transactions, result.err = sub.handler(ctx, n.Payload)
	}

	if result.err != nil {
		s.metrics.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("subscription.name", sub.name)))
	}

	return result
}

// dispatchNotifications reads notifications, numbers them in arrival order and
// handles each in its own goroutine. At most cap(slots) notifications are
// in flight or waiting for release at any time; slots are freed by
// releaseInOrder once a result has been delivered.
//
// resultsCh is closed once the feed ends and every started handler has
// reported its result.
func (s *service) dispatchNotifications(ctx context.Context, sub subscription, notificationsCh <-chan Notification, slots chan struct{}, resultsCh chan<- notificationResult) {
	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		close(resultsCh)
	}()

	for seq := uint64(0); ; seq++ {
		notification, ok := chflow.Receive(ctx, notificationsCh)
		if !ok {
			return
		}

		if ok := chflow.Send(ctx, slots, struct{}{}); !ok {
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			result := s.handleNotification(ctx, sub, seq, notification)
			_ = chflow.Send(ctx, resultsCh, result)
		}()
	}
}

// emitResult writes a released result to eventsCh: one event per transaction,
// or a single error event. It returns false if ctx was canceled.
func emitResult(ctx context.Context, result notificationResult, eventsCh chan<- TransactionEvent) bool {
	if result.err != nil {
		return chflow.Send(ctx, eventsCh, TransactionEvent{Err: result.err})
	}

	for _, tx := range result.transactions {
		if ok := chflow.Send(ctx, eventsCh, TransactionEvent{Transaction: tx}); !ok {
			return false
		}
	}

	return true
}

// releaseInOrder consumes completed results, reorders them by arrival
// sequence and forwards them to eventsCh. It returns when resultsCh is closed
// or ctx is canceled.
func (s *service) releaseInOrder(ctx context.Context, resultsCh <-chan notificationResult, slots <-chan struct{}, eventsCh chan<- TransactionEvent) {
	buffer := newReorderBuffer()
	for {
		result, ok := chflow.Receive(ctx, resultsCh)
		if !ok {
			return
		}

		for _, ready := range buffer.push(result) {
			if ok := emitResult(ctx, ready, eventsCh); !ok {
				return
			}
			<-slots
		}
	}
}

// Subscribe implements the Service interface.
//
// The notification feed is opened with a context derived from ctx and owned
// by the subscription: it is released when the stream ends, either because
// ctx was canceled or because the feed closed and all pending results were
// delivered.
func (s *service) Subscribe(ctx context.Context, name string) (<-chan TransactionEvent, error) {
	sub, err := s.subscriptions.lookup(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	notificationsCh, err := s.source.Subscribe(ctx, sub.topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribing to topic %s: %w", sub.topic, err)
	}

	var (
		slots     = make(chan struct{}, s.maxInFlight)
		resultsCh = make(chan notificationResult, s.maxInFlight)
		eventsCh  = make(chan TransactionEvent, eventChannelBufferSize)
	)

	go s.dispatchNotifications(ctx, sub, notificationsCh, slots, resultsCh)
	go func() {
		defer cancel()
		defer close(eventsCh)

		s.releaseInOrder(ctx, resultsCh, slots, eventsCh)
	}()

	logger.Info(ctx, "subscription started",
		"subscription.name", sub.name,
		"subscription.topic", sub.topic,
		"subscription.max_in_flight", s.maxInFlight,
	)

	return eventsCh, nil
}
