// Package config loads the process configuration from TXFEED_* environment
// variables.
package config

import (
	"time"

	"github.com/gabapcia/txfeed/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every variable name, e.g. TXFEED_RPC_ENDPOINT.
const envPrefix = "TXFEED"

// Notification drivers accepted by SubscriptionDriver.
const (
	DriverZMQ   = "zmq"
	DriverRedis = "redis"
)

// Config is the full process configuration.
type Config struct {
	// Notification source
	SubscriptionEndpoint   string        `envconfig:"SUBSCRIPTION_ENDPOINT" validate:"required"`
	SubscriptionDriver     string        `envconfig:"SUBSCRIPTION_DRIVER" default:"zmq" validate:"oneof=zmq redis"`
	SubscriptionTimeout    time.Duration `envconfig:"SUBSCRIPTION_TIMEOUT" default:"10s" validate:"gt=0"`
	SubscriptionMsgTimeout time.Duration `envconfig:"SUBSCRIPTION_MSG_TIMEOUT" default:"0s" validate:"gte=0"`

	// Node RPC
	RPCEndpoint string        `envconfig:"RPC_ENDPOINT" validate:"required,url"`
	RPCUser     string        `envconfig:"RPC_USER"`
	RPCPassword string        `envconfig:"RPC_PASSWORD"`
	RPCTimeout  time.Duration `envconfig:"RPC_TIMEOUT" default:"5s" validate:"gt=0"`
	RPCRetryMax int           `envconfig:"RPC_RETRY_MAX" default:"2" validate:"gte=0"`

	// Pipeline
	CurrencySymbol       string `envconfig:"CURRENCY_SYMBOL" default:"BTC" validate:"required"`
	MaxInFlight          int    `envconfig:"MAX_IN_FLIGHT" default:"16" validate:"min=1"`
	MaxConcurrentLookups int    `envconfig:"MAX_CONCURRENT_LOOKUPS" default:"4" validate:"min=1"`

	// Kafka sink, disabled when no broker is set
	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" validate:"omitempty,dive,hostname_port"`
	KafkaTopic     string   `envconfig:"KAFKA_TOPIC" default:"transactions" validate:"required"`
	KafkaStreamKey string   `envconfig:"KAFKA_STREAM_KEY"`

	// Observability
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"txfeed" validate:"required"`
}

// Load reads and validates the configuration. Validation failures match
// validator.ErrValidationFailed.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
