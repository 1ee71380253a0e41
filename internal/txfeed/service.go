// Package txfeed turns block-arrival notifications from a node's pub/sub feed
// into an ordered stream of canonical, wallet-relevant transactions, enriched
// through RPC lookups against the node.
//
// The package is a stateless per-notification transformer: it fetches each
// announced block, looks up every embedded transaction in the node's wallet,
// aggregates addresses and categories, and emits one Transaction per wallet
// transaction, preserving notification arrival order.
package txfeed

import (
	"cmp"
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultCurrencySymbol is used when no currency symbol is configured.
	DefaultCurrencySymbol = "BTC"

	// defaultMaxInFlight bounds how many notifications are enriched concurrently
	// per subscription.
	defaultMaxInFlight = 16

	// defaultMaxConcurrentLookups bounds the wallet lookups of a single block.
	// It matches bitcoind's default -rpcthreads.
	defaultMaxConcurrentLookups = 4

	instrumentationName = "github.com/gabapcia/txfeed/internal/txfeed"
)

// Service is the public surface of the pipeline.
type Service interface {
	// Subscribe validates name against the supported subscription table and,
	// on success, opens the matching notification feed and returns a stream of
	// transaction events in notification arrival order.
	//
	// It returns ErrInvalidSubscription for unknown names without touching the
	// notification source. The stream is closed when ctx is canceled or the
	// feed ends.
	Subscribe(ctx context.Context, name string) (<-chan TransactionEvent, error)

	// Subscriptions lists the supported subscription names.
	Subscriptions() []string
}

// service is the default Service implementation.
type service struct {
	gateway Gateway            // shared, read-only node RPC access
	source  NotificationSource // pub/sub feed, owned by each subscription

	currencySymbol string
	maxInFlight    int
	maxLookups     int

	subscriptions subscriptionTable
	metrics       metrics
	tracer        trace.Tracer
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

type config struct {
	currencySymbol string
	maxInFlight    int
	maxLookups     int
}

// Option customizes the service built by New.
type Option func(*config)

// New builds the pipeline around an already constructed gateway and
// notification source.
//
// Default configuration:
//   - currency symbol: DefaultCurrencySymbol
//   - max in-flight notifications per subscription: 16
//   - max concurrent lookups per block: 4
func New(gateway Gateway, source NotificationSource, opts ...Option) *service {
	cfg := config{
		currencySymbol: DefaultCurrencySymbol,
		maxInFlight:    defaultMaxInFlight,
		maxLookups:     defaultMaxConcurrentLookups,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &service{
		gateway:        gateway,
		source:         source,
		currencySymbol: cmp.Or(cfg.currencySymbol, DefaultCurrencySymbol),
		maxInFlight:    max(cfg.maxInFlight, 1),
		maxLookups:     max(cfg.maxLookups, 1),
		metrics:        newMetrics(),
		tracer:         otel.Tracer(instrumentationName),
	}
	s.subscriptions = s.newSubscriptionTable()

	return s
}

// WithCurrencySymbol sets the currency symbol stamped on every Transaction.
// An empty symbol keeps the default.
func WithCurrencySymbol(symbol string) Option {
	return func(c *config) {
		c.currencySymbol = symbol
	}
}

// WithMaxInFlight sets how many notifications of a single subscription may be
// processed concurrently. Values below 1 are treated as 1.
func WithMaxInFlight(n int) Option {
	return func(c *config) {
		c.maxInFlight = n
	}
}

// WithMaxConcurrentLookups sets how many wallet lookups of a single block may
// run at the same time. Values below 1 are treated as 1.
func WithMaxConcurrentLookups(n int) Option {
	return func(c *config) {
		c.maxLookups = n
	}
}
