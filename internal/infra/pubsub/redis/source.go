// Package redis implements txfeed.NotificationSource over Redis pub/sub, for
// deployments that relay node notifications through a Redis server.
//
// Relayed payloads are published on the channel "<prefix><topic>" as the hex
// encoded block hash.
package redis

import (
	"context"
	"fmt"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/x/chflow"
	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/redis/go-redis/v9"
)

// notificationBufferSize is the buffer of the channel returned by Subscribe.
const notificationBufferSize = 64

type source struct {
	conn   *redis.Client
	prefix string
}

// Ensure source implements the txfeed.NotificationSource interface at compile time.
var _ txfeed.NotificationSource = (*source)(nil)

// Option customizes the source built by NewSource.
type Option func(*source)

// WithChannelPrefix namespaces the channels the source subscribes to.
// Default: no prefix.
func WithChannelPrefix(prefix string) Option {
	return func(s *source) {
		s.prefix = prefix
	}
}

// NewSource prepares a source for the server described by url
// (redis://[user:password@]host:port/db). No connection is opened until
// Subscribe is called.
func NewSource(url string, opts ...Option) (*source, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	s := &source{conn: redis.NewClient(options)}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases the connection pool.
func (s *source) Close() error {
	return s.conn.Close()
}

// channel returns the Redis channel carrying topic.
func (s *source) channel(topic string) string {
	return s.prefix + topic
}

// toNotification converts a relayed message. The hex payload is passed on as
// text.
func toNotification(topic string, msg *redis.Message) txfeed.Notification {
	return txfeed.Notification{
		Topic:   topic,
		Payload: []byte(msg.Payload),
	}
}

// Subscribe implements the txfeed.NotificationSource interface. The server is
// checked with a PING and the subscription is confirmed before Subscribe
// returns; go-redis re-subscribes on its own after connection losses.
func (s *source) Subscribe(ctx context.Context, topic string) (<-chan txfeed.Notification, error) {
	if err := s.conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	channel := s.channel(topic)

	pubsub := s.conn.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to channel %s: %w", channel, err)
	}

	logger.Info(ctx, "notification source subscribed", "redis.channel", channel)

	notificationsCh := make(chan txfeed.Notification, notificationBufferSize)
	go func() {
		defer close(notificationsCh)
		defer pubsub.Close()

		msgsCh := pubsub.Channel()
		for {
			msg, ok := chflow.Receive(ctx, msgsCh)
			if !ok {
				return
			}

			if ok := chflow.Send(ctx, notificationsCh, toNotification(topic, msg)); !ok {
				return
			}
		}
	}()

	return notificationsCh, nil
}
