// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Completion policies decide when a payment collection may be completed.
const (
	CompletionPolicyAnyAuthorized = "any_authorized"
	CompletionPolicyFullAmount    = "full_amount"
)

// Config defines the configuration options for this service.
type Config struct {
	BindAddr          string   `env:"BIND_ADDR"            flag:"bind-addr"            flagDesc:"Bind address"`
	Collection        string   `env:"MONGODB_COLLECTION"   flag:"mongodb-collection"   flagDesc:"MongoDB collection for data"`
	Database          string   `env:"MONGODB_DATABASE"     flag:"mongodb-database"     flagDesc:"MongoDB database for data"`
	MongoDBURL        string   `env:"MONGODB_URL"          flag:"mongodb-url"          flagDesc:"MongoDB server URL"`
	RedisURL          string   `env:"REDIS_URL"            flag:"redis-url"            flagDesc:"Redis URL used for collection locks, in-process locks when empty"`
	LockTTLMillis     int      `env:"LOCK_TTL_MS"          flag:"lock-ttl-ms"          flagDesc:"Expiry of a collection lock in milliseconds"`
	CompletionPolicy  string   `env:"COMPLETION_POLICY"    flag:"completion-policy"    flagDesc:"When a payment collection may complete: any_authorized or full_amount"`
	BrokerAddr        []string `env:"KAFKA_BROKER_ADDR"    flag:"broker-addr"          flagDesc:"Kafka broker address"`
	SchemaRegistryURL string   `env:"SCHEMA_REGISTRY_URL"  flag:"schema-registry-url"  flagDesc:"Schema registry url"`
	PaypalEnv         string   `env:"PAYPAL_ENV"           flag:"paypal-env"           flagDesc:"PayPal environment: test or live, PayPal disabled when empty"`
	PaypalClientID    string   `env:"PAYPAL_CLIENT_ID"     flag:"paypal-client-id"     flagDesc:"PayPal client ID"`
	PaypalSecret      string   `env:"PAYPAL_SECRET"        flag:"paypal-secret"        flagDesc:"PayPal secret"`
	PaymentsAPIURL    string   `env:"PAYMENTS_API_URL"     flag:"payments-api-url"     flagDesc:"Base URL of this service, used in provider return urls"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:         ":4050",
		Database:         "payments",
		Collection:       "payment_collections",
		LockTTLMillis:    10000,
		CompletionPolicy: CompletionPolicyAnyAuthorized,
	}
}

// LockTTL returns the lock expiry as a duration.
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMillis) * time.Millisecond
}

// Validate checks the values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	switch c.CompletionPolicy {
	case CompletionPolicyAnyAuthorized, CompletionPolicyFullAmount:
	default:
		return fmt.Errorf("invalid completion policy in config: %s", c.CompletionPolicy)
	}
	if c.LockTTLMillis <= 0 {
		return fmt.Errorf("invalid lock ttl in config: %d", c.LockTTLMillis)
	}
	return nil
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
