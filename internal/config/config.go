// Package config loads the application configuration from environment
// variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the service. Values are read from
// the environment with the LANDPAY prefix (e.g. LANDPAY_HTTP_ADDRESS).
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddress string `envconfig:"HTTP_ADDRESS" default:":8080"`

	// Ethereum node and installment contract
	ProviderEndpoint    string        `envconfig:"PROVIDER_ENDPOINT" required:"true"`
	ChainAccount        string        `envconfig:"CHAIN_ACCOUNT" required:"true"`
	ContractAddress     string        `envconfig:"CONTRACT_ADDRESS" required:"true"`
	GasLimit            uint64        `envconfig:"GAS_LIMIT" default:"2000000"`
	ReceiptPollInterval time.Duration `envconfig:"RECEIPT_POLL_INTERVAL" default:"2s"`
	ReceiptTimeout      time.Duration `envconfig:"RECEIPT_TIMEOUT" default:"90s"`

	// Ledger persistence
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	// Reconciliation lease coordination
	RedisAddress  string        `envconfig:"REDIS_ADDRESS" required:"true"`
	RedisUsername string        `envconfig:"REDIS_USERNAME"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	TxLockTTL     time.Duration `envconfig:"TX_LOCK_TTL" default:"5m"`
}

// Load reads the configuration from the environment. Missing required
// variables yield an error.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("landpay", &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
