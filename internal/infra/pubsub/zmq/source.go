// Package zmq implements txfeed.NotificationSource over a node's ZeroMQ
// publisher (bitcoind -zmqpub* endpoints).
package zmq

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/resilience/retry"
	"github.com/gabapcia/txfeed/internal/pkg/x/chflow"
	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/go-zeromq/zmq4"
)

const (
	// notificationBufferSize is the buffer of the channel returned by Subscribe.
	notificationBufferSize = 64

	// sequenceFrameSize is the size of the little-endian sequence number frame
	// appended by the node to every notification.
	sequenceFrameSize = 4
)

// ErrMessageTimeout is reported on the feed when no message arrives within the
// configured message timeout. The subscription stays open.
var ErrMessageTimeout = errors.New("no notification received within the message timeout")

// socketFactory builds a SUB socket. It matches zmq4.NewSub.
type socketFactory func(ctx context.Context, opts ...zmq4.Option) zmq4.Socket

// source implements txfeed.NotificationSource over ZeroMQ.
type source struct {
	endpoint    string
	dialTimeout time.Duration
	msgTimeout  time.Duration
	retry       retry.Retry
	newSocket   socketFactory
}

// Ensure source implements the txfeed.NotificationSource interface at compile time.
var _ txfeed.NotificationSource = (*source)(nil)

type config struct {
	dialTimeout time.Duration
	msgTimeout  time.Duration
	retry       retry.Retry
}

// Option customizes the source built by NewSource.
type Option func(*config)

// WithDialTimeout bounds each connection attempt. Default: 10 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(c *config) {
		c.dialTimeout = d
	}
}

// WithMessageTimeout reports ErrMessageTimeout whenever d passes without a
// message. Zero disables the check. Default: 0.
func WithMessageTimeout(d time.Duration) Option {
	return func(c *config) {
		c.msgTimeout = d
	}
}

// WithRetry sets the policy used to (re)establish the connection.
// Default: retry.New() with its defaults.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// NewSource returns a NotificationSource that subscribes to endpoint, for
// example "tcp://127.0.0.1:28332".
func NewSource(endpoint string, opts ...Option) *source {
	cfg := config{
		dialTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.retry == nil {
		cfg.retry = retry.New()
	}

	return &source{
		endpoint:    endpoint,
		dialTimeout: cfg.dialTimeout,
		msgTimeout:  cfg.msgTimeout,
		retry:       cfg.retry,
		newSocket:   zmq4.NewSub,
	}
}

// connect dials the endpoint, retrying with the configured policy, and
// subscribes the socket to topic.
func (s *source) connect(ctx context.Context, topic string) (zmq4.Socket, error) {
	var sock zmq4.Socket
	err := s.retry.Execute(ctx, func() error {
		sock = s.newSocket(ctx, zmq4.WithDialerTimeout(s.dialTimeout))
		if err := sock.Dial(s.endpoint); err != nil {
			_ = sock.Close()
			logger.Warn(ctx, "error dialing notification endpoint",
				"zmq.endpoint", s.endpoint,
				"error", err,
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", s.endpoint, err)
	}

	if err := sock.SetOption(zmq4.OptionSubscribe, topic); err != nil {
		_ = sock.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}

	return sock, nil
}

// Subscribe implements the txfeed.NotificationSource interface.
//
// The initial connection is established before Subscribe returns. Receive
// failures are reported on the feed and followed by a reconnection; the feed
// is closed when ctx is canceled or a reconnection fails.
func (s *source) Subscribe(ctx context.Context, topic string) (<-chan txfeed.Notification, error) {
	sock, err := s.connect(ctx, topic)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "notification source connected",
		"zmq.endpoint", s.endpoint,
		"zmq.topic", topic,
	)

	notificationsCh := make(chan txfeed.Notification, notificationBufferSize)
	go s.run(ctx, sock, topic, notificationsCh)

	return notificationsCh, nil
}

// run owns sock and the feed channel until the feed ends.
func (s *source) run(ctx context.Context, sock zmq4.Socket, topic string, notificationsCh chan<- txfeed.Notification) {
	defer close(notificationsCh)

	for {
		err := s.consume(ctx, sock, topic, notificationsCh)
		_ = sock.Close()
		if ctx.Err() != nil {
			return
		}

		if ok := chflow.Send(ctx, notificationsCh, txfeed.Notification{Topic: topic, Err: err}); !ok {
			return
		}

		sock, err = s.connect(ctx, topic)
		if err != nil {
			_ = chflow.Send(ctx, notificationsCh, txfeed.Notification{Topic: topic, Err: err})
			return
		}

		logger.Info(ctx, "notification source reconnected", "zmq.endpoint", s.endpoint)
	}
}

// consume forwards messages from sock until a receive fails or ctx is done,
// and returns the cause.
func (s *source) consume(ctx context.Context, sock zmq4.Socket, topic string, notificationsCh chan<- txfeed.Notification) error {
	var (
		msgsCh = make(chan zmq4.Msg)
		errCh  = make(chan error, 1)
	)

	go func() {
		for {
			msg, err := sock.Recv()
			if err != nil {
				errCh <- err
				return
			}

			if ok := chflow.Send(ctx, msgsCh, msg); !ok {
				return
			}
		}
	}()

	var (
		timer     *time.Timer
		timeoutCh <-chan time.Time
	)
	if s.msgTimeout > 0 {
		timer = time.NewTimer(s.msgTimeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	var seq sequence
	for {
		var notification txfeed.Notification
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return fmt.Errorf("receiving from %s: %w", s.endpoint, err)
		case <-timeoutCh:
			notification = txfeed.Notification{Topic: topic, Err: ErrMessageTimeout}
		case msg := <-msgsCh:
			var ok bool
			if notification, ok = s.decode(ctx, topic, msg, &seq); !ok {
				continue
			}
		}

		if timer != nil {
			timer.Reset(s.msgTimeout)
		}

		if ok := chflow.Send(ctx, notificationsCh, notification); !ok {
			return ctx.Err()
		}
	}
}

// sequence tracks the node's per-topic message counter.
type sequence struct {
	last  uint32
	valid bool
}

// observe records n and reports how many messages were skipped since the
// previous one.
func (s *sequence) observe(n uint32) uint32 {
	var missed uint32
	if s.valid && n != s.last+1 {
		missed = n - s.last - 1
	}

	s.last, s.valid = n, true
	return missed
}

// decode turns a [topic, body, sequence] multipart message into a
// Notification. Messages for other topics are dropped.
func (s *source) decode(ctx context.Context, topic string, msg zmq4.Msg, seq *sequence) (txfeed.Notification, bool) {
	if len(msg.Frames) < 2 || string(msg.Frames[0]) != topic {
		logger.Debug(ctx, "dropping unexpected message",
			"zmq.topic", topic,
			"zmq.frames", len(msg.Frames),
		)
		return txfeed.Notification{}, false
	}

	if len(msg.Frames) > 2 && len(msg.Frames[2]) == sequenceFrameSize {
		if missed := seq.observe(binary.LittleEndian.Uint32(msg.Frames[2])); missed > 0 {
			logger.Warn(ctx, "notifications were missed",
				"zmq.topic", topic,
				"zmq.missed", missed,
			)
		}
	}

	return txfeed.Notification{
		Topic:   topic,
		Payload: msg.Frames[1],
	}, true
}
