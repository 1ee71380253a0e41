package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gabapcia/txfeed/internal/config"
	"github.com/gabapcia/txfeed/internal/handlers/cli"
	"github.com/gabapcia/txfeed/internal/infra/node/bitcoin"
	"github.com/gabapcia/txfeed/internal/infra/pubsub/redis"
	"github.com/gabapcia/txfeed/internal/infra/pubsub/zmq"
	"github.com/gabapcia/txfeed/internal/infra/sink/kafka"
	"github.com/gabapcia/txfeed/internal/infra/sink/stdout"
	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/resilience/retry"
	"github.com/gabapcia/txfeed/internal/pkg/telemetry"
	"github.com/gabapcia/txfeed/internal/pkg/transport/http"
	"github.com/gabapcia/txfeed/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/txfeed/internal/txfeed"
)

// nopCloser is used by components that hold no resources.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newGateway(cfg config.Config) txfeed.Gateway {
	httpClient := http.NewClient(
		http.WithTimeout(cfg.RPCTimeout),
		http.WithRetryMax(cfg.RPCRetryMax),
	)

	var opts []jsonrpc.Option
	if cfg.RPCUser != "" {
		opts = append(opts, jsonrpc.WithBasicAuth(cfg.RPCUser, cfg.RPCPassword))
	}

	conn := jsonrpc.NewClient(httpClient.StandardClient(), cfg.RPCEndpoint, opts...)
	return bitcoin.NewClient(conn)
}

func newSource(ctx context.Context, cfg config.Config) (txfeed.NotificationSource, io.Closer, error) {
	switch cfg.SubscriptionDriver {
	case config.DriverRedis:
		source, err := redis.NewSource(cfg.SubscriptionEndpoint)
		if err != nil {
			return nil, nil, err
		}
		return source, source, nil
	default:
		source := zmq.NewSource(cfg.SubscriptionEndpoint,
			zmq.WithDialTimeout(cfg.SubscriptionTimeout),
			zmq.WithMessageTimeout(cfg.SubscriptionMsgTimeout),
			zmq.WithRetry(retry.New(
				retry.WithAttempts(5),
				retry.WithOnRetry(func(n uint, err error) {
					logger.Warn(ctx, "retrying notification endpoint", "retry.attempt", n, "error", err)
				}),
			)),
		)
		return source, nopCloser{}, nil
	}
}

func newSink(cfg config.Config) (txfeed.Sink, io.Closer) {
	if len(cfg.KafkaBrokers) == 0 {
		return stdout.NewSink(os.Stdout), nopCloser{}
	}

	sink := kafka.NewSink(cfg.KafkaBrokers, cfg.KafkaTopic, kafka.WithStreamKey(cfg.KafkaStreamKey))
	return sink, sink
}

func run(ctx context.Context, cfg config.Config) error {
	source, sourceCloser, err := newSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configuring notification source: %w", err)
	}
	defer sourceCloser.Close()

	sink, sinkCloser := newSink(cfg)
	defer func() {
		if err := sinkCloser.Close(); err != nil {
			logger.Error(ctx, "error closing sink", "error", err)
		}
	}()

	svc := txfeed.New(newGateway(cfg), source,
		txfeed.WithCurrencySymbol(cfg.CurrencySymbol),
		txfeed.WithMaxInFlight(cfg.MaxInFlight),
		txfeed.WithMaxConcurrentLookups(cfg.MaxConcurrentLookups),
	)

	return cli.Run(ctx, svc, sink)
}

// start loads the configuration and runs the CLI with telemetry and logging
// set up. Deferred cleanups run before the process exits.
func start(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				fmt.Fprintln(os.Stderr, "error shutting down telemetry:", err)
			}
		}()
	}

	// Logs go to stderr so that the stdout sink stays machine readable.
	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "txfeed stopped with an error", "error", err)
		return err
	}

	return nil
}

func main() {
	if err := start(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
