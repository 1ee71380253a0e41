// Package logger provides the process-wide structured logger.
//
// It wraps a sugared zap logger that writes JSON to stdout and, when an
// OpenTelemetry LoggerProvider is registered by the telemetry package, tees
// every entry to the OTEL bridge. Until Init is called all calls are no-ops,
// so packages can log unconditionally.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/txfeed/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// instrumentationScope names the OTEL logger scope of the bridge core.
const instrumentationScope = "github.com/gabapcia/txfeed"

var (
	// logger is the global sugared logger. It starts as a no-op logger and is
	// replaced once by Init.
	logger = zap.NewNop().Sugar()

	// initOnce guards the one-time configuration performed by Init.
	initOnce sync.Once
)

// config holds the logger settings applied by Init.
type config struct {
	level  string    // minimum level: debug, info, warn, error, panic, fatal
	output io.Writer // destination of the JSON core
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level. Default: "info".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput sets the writer of the JSON core. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// Init configures the global logger. Only the first successful call has an
// effect. It returns an error if the configured level cannot be parsed.
func Init(opts ...Option) error {
	cfg := config{level: "info", output: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(cfg.output),
				level,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore(instrumentationScope, otelzap.WithLoggerProvider(lp)))
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() error {
	return logger.Sync()
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message and exits the process.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Fatalw(msg, keysAndValues...)
}
