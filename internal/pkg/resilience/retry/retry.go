// Package retry runs operations with exponential backoff on top of
// avast/retry-go.
//
// Basic usage:
//
//	r := retry.New(retry.WithAttempts(5))
//	err := r.Execute(ctx, func() error {
//	    return sub.Dial(endpoint)
//	})
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes an operation until it succeeds, the attempts are exhausted,
// the error is not retryable or ctx is done.
type Retry interface {
	// Execute runs operation, retrying it according to the configuration.
	// operation must be safe to call more than once.
	//
	// It returns nil on success, ctx.Err() when ctx ends while waiting between
	// attempts, and otherwise the last error (or all errors joined when
	// WithLastErrorOnly(false) is used).
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint                    // maximum number of attempts, 0 for unlimited
	delay       time.Duration           // base delay between attempts
	maxDelay    time.Duration           // cap on the backoff delay
	lastErrOnly bool                    // whether to return only the last error
	retryIf     func(err error) bool    // decides whether err is worth another attempt
	onRetry     func(n uint, err error) // called after each failed attempt that will be retried
}

// Option customizes a Retry built by New.
type Option func(*config)

// retrier implements Retry with retry-go.
type retrier struct {
	cfg config
}

// Compile-time assertion that retrier implements Retry interface
var _ Retry = (*retrier)(nil)

// New returns a Retry configured with opts.
//
// Default configuration:
//   - attempts:    3
//   - delay:       1 second, doubled on every attempt
//   - maxDelay:    5 seconds
//   - lastErrOnly: true
//   - retryIf:     every error is retried
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
		retryIf:     retry.IsRecoverable,
		onRetry:     func(uint, error) {},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.RetryIf(r.cfg.retryIf),
		retry.OnRetry(r.cfg.onRetry),
		retry.Context(ctx),
	)
}

// WithAttempts sets the maximum number of attempts, including the first one.
// Zero retries until the operation succeeds or ctx is done. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base backoff delay. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly selects whether only the last error is returned (true)
// or every attempt's error is combined (false). Default: true.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithRetryIf restricts retries to errors for which f returns true. The
// first non-retryable error is returned immediately.
func WithRetryIf(f func(err error) bool) Option {
	return func(c *config) {
		c.retryIf = f
	}
}

// WithOnRetry registers a callback invoked with the attempt number and error
// of every failed attempt that will be retried.
func WithOnRetry(f func(n uint, err error)) Option {
	return func(c *config) {
		c.onRetry = f
	}
}
