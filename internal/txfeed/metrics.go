package txfeed

import (
	"context"

	"github.com/gabapcia/txfeed/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// metrics groups the pipeline counters. When no MeterProvider is registered
// the global no-op provider makes every counter free.
type metrics struct {
	emitted metric.Int64Counter // transactions built from an enrichment
	skipped metric.Int64Counter // lookups answered with not-found
	failed  metric.Int64Counter // notifications whose processing failed
}

func newMetrics() metrics {
	meter := otel.Meter(instrumentationName)

	return metrics{
		emitted: newCounter(meter, "txfeed.transactions.emitted", "Transactions produced by the enrichment pipeline"),
		skipped: newCounter(meter, "txfeed.transactions.skipped", "Transactions skipped because the node does not know them"),
		failed:  newCounter(meter, "txfeed.notifications.failed", "Notifications whose processing ended in an error"),
	}
}

func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		logger.Warn(context.Background(), "error creating counter, falling back to no-op",
			"metric.name", name,
			"error", err,
		)
		return noop.Int64Counter{}
	}

	return counter
}
