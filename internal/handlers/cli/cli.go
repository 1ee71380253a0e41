package cli

import (
	"context"
	"os"

	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the txfeed CLI application.
//
// It registers all available commands, including:
//
//   - `subscribe`: Streams the transactions of a subscription to the sink.
//   - `subscriptions`: Lists the supported subscription names.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - svc: The txfeed service used by the subscription commands.
//   - sink: The destination of streamed transactions.
func Run(ctx context.Context, svc txfeed.Service, sink txfeed.Sink) error {
	return newApp(svc, sink).Run(ctx, os.Args)
}

// newApp builds the root command.
func newApp(svc txfeed.Service, sink txfeed.Sink) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "txfeed",
		Description:           "Streams wallet transactions from newly validated blocks of a node.",
		Usage:                 "txfeed [command] [flags]",
		Commands: []*cli.Command{
			subscribeCommand(svc, sink),
			listSubscriptionsCommand(svc),
		},
	}
}
