package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/x/chflow"
	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds how long subscribe waits for the stream to close
// after it stops forwarding.
const shutdownTimeout = 5 * time.Second

// ErrStreamEnded is returned by subscribe when the stream closes on its own,
// e.g. after the notification source gave up reconnecting.
var ErrStreamEnded = errors.New("transaction stream ended unexpectedly")

// forward streams events to sink and, once forwarding stops, cancels the
// subscription and waits for the rest of the stream to be released.
//
// A stream that closes while ctx is still live yields ErrStreamEnded.
func forward(ctx context.Context, cancel context.CancelFunc, events <-chan txfeed.TransactionEvent, sink txfeed.Sink) error {
	err := txfeed.Forward(ctx, events, sink, nil)
	if err == nil && ctx.Err() == nil {
		err = ErrStreamEnded
	}
	cancel()

	drainCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()
	chflow.Drain(drainCtx, events)

	return err
}

// subscribeCommand returns a CLI command that opens a subscription and pushes
// every transaction to the sink.
//
// Usage example:
//
//	txfeed subscribe --name transactions
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM), which
// is a clean stop. A sink failure or a stream that ends on its own is
// reported as an error.
func subscribeCommand(svc txfeed.Service, sink txfeed.Sink) *cli.Command {
	return &cli.Command{
		Name:        "subscribe",
		Description: "Streams the transactions of a subscription to the configured sink.",
		Usage:       "Opens a subscription and forwards its transactions. Terminates gracefully on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Subscription name (see the subscriptions command)",
				Value: txfeed.SubscriptionTransactions,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			name := c.String("name")
			events, err := svc.Subscribe(ctx, name)
			if err != nil {
				return err
			}

			if err := forward(ctx, cancel, events, sink); err != nil {
				return fmt.Errorf("forwarding %s: %w", name, err)
			}

			logger.Info(ctx, "subscription stopped", "subscription.name", name)
			return nil
		},
	}
}

// listSubscriptionsCommand returns a CLI command that prints the supported
// subscription names, one per line.
//
// Usage example:
//
//	txfeed subscriptions
func listSubscriptionsCommand(svc txfeed.Service) *cli.Command {
	return &cli.Command{
		Name:        "subscriptions",
		Description: "Lists the subscription names accepted by the subscribe command.",
		Usage:       "Prints the supported subscription names.",
		Action: func(ctx context.Context, c *cli.Command) error {
			for _, name := range svc.Subscriptions() {
				if _, err := fmt.Fprintln(c.Root().Writer, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
