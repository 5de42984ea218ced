// Package config loads service configuration from .env, an optional TOML file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendSQLite   = "sqlite"
)

// FileEnv names the environment variable pointing at the TOML config file.
const FileEnv = "LEDGER_CONFIG"

// Config is the full service configuration.
type Config struct {
	Storage       StorageConfig  `toml:"storage"`
	DynamoDB      DynamoDBConfig `toml:"dynamodb"`
	Notifications NotifyConfig   `toml:"notifications"`
	HTTP          HTTPConfig     `toml:"http"`
	Payments      PaymentsConfig `toml:"payments"`
	Ledger        LedgerConfig   `toml:"ledger"`
}

type StorageConfig struct {
	Backend    string `toml:"backend"`
	SQLitePath string `toml:"sqlite_path"`
}

type DynamoDBConfig struct {
	DonationsTable   string `toml:"donations_table"`
	LeadsTable       string `toml:"leads_table"`
	ActivityTable    string `toml:"activity_table"`
	ConnectionsTable string `toml:"connections_table"`
}

type NotifyConfig struct {
	QueueURL          string `toml:"queue_url"`
	WebsocketEndpoint string `toml:"websocket_endpoint"`
}

type HTTPConfig struct {
	Port           string `toml:"port"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
}

// PaymentsConfig enables the payment gateway. With only the key secret set,
// confirmations are verified but orders cannot be created.
type PaymentsConfig struct {
	RazorpayKeyID     string `toml:"razorpay_key_id"`
	RazorpayKeySecret string `toml:"razorpay_key_secret"`
	RazorpayBaseURL   string `toml:"razorpay_base_url"`
	Currency          string `toml:"currency"`
}

type LedgerConfig struct {
	AllocationMaxRetries int `toml:"allocation_max_retries"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			SQLitePath: "ledger.db",
		},
		HTTP: HTTPConfig{
			Port:           "8080",
			MetricsEnabled: true,
		},
		Payments: PaymentsConfig{
			Currency: "INR",
		},
		Ledger: LedgerConfig{
			AllocationMaxRetries: 3,
		},
	}
}

// Load builds the configuration. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := DefaultConfig()
	if path := os.Getenv(FileEnv); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFile decodes the TOML file at path over cfg.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("ignoring unknown config keys", "file", path, "keys", fmt.Sprint(undecoded))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"STORAGE_BACKEND":                 &cfg.Storage.Backend,
		"SQLITE_PATH":                     &cfg.Storage.SQLitePath,
		"DYNAMODB_DONATIONS_TABLE_NAME":   &cfg.DynamoDB.DonationsTable,
		"DYNAMODB_LEADS_TABLE_NAME":       &cfg.DynamoDB.LeadsTable,
		"DYNAMODB_ACTIVITY_TABLE_NAME":    &cfg.DynamoDB.ActivityTable,
		"DYNAMODB_CONNECTIONS_TABLE_NAME": &cfg.DynamoDB.ConnectionsTable,
		"SQS_QUEUE_URL":                   &cfg.Notifications.QueueURL,
		"WEBSOCKET_API_ENDPOINT":          &cfg.Notifications.WebsocketEndpoint,
		"HTTP_PORT":                       &cfg.HTTP.Port,
		"RAZORPAY_KEY_ID":                 &cfg.Payments.RazorpayKeyID,
		"RAZORPAY_KEY_SECRET":             &cfg.Payments.RazorpayKeySecret,
		"RAZORPAY_BASE_URL":               &cfg.Payments.RazorpayBaseURL,
		"PAYMENTS_CURRENCY":               &cfg.Payments.Currency,
	}
	for key, dest := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dest = v
		}
	}

	if v, ok := os.LookupEnv("METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.HTTP.MetricsEnabled = enabled
	}
	if v, ok := os.LookupEnv("ALLOCATION_MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ALLOCATION_MAX_RETRIES %q: %w", v, err)
		}
		cfg.Ledger.AllocationMaxRetries = n
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set for the sqlite backend")
		}
	case BackendDynamoDB:
		if err := c.DynamoDB.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Payments.RazorpayKeyID != "" && c.Payments.RazorpayKeySecret == "" {
		return errors.New("RAZORPAY_KEY_SECRET must be set when RAZORPAY_KEY_ID is")
	}
	if c.Ledger.AllocationMaxRetries < 0 {
		return fmt.Errorf("allocation max retries must not be negative, got %d", c.Ledger.AllocationMaxRetries)
	}
	return nil
}

// Validate checks that every table name is set.
func (c DynamoDBConfig) Validate() error {
	if c.DonationsTable == "" || c.LeadsTable == "" || c.ActivityTable == "" || c.ConnectionsTable == "" {
		return errors.New("one or more DynamoDB table name environment variables are not set")
	}
	return nil
}
