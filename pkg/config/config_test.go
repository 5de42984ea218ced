package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, 3, cfg.Ledger.AllocationMaxRetries)
	assert.Equal(t, "INR", cfg.Payments.Currency)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	// Load reads .env from the working directory; run from an empty one.
	t.Chdir(t.TempDir())

	t.Run("File Then Environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ledger.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "dynamodb"

[dynamodb]
donations_table = "donations"
leads_table = "leads"
activity_table = "activity"
connections_table = "connections"

[http]
port = "9000"
metrics_enabled = false
`), 0o600))
		t.Setenv(FileEnv, path)
		t.Setenv("HTTP_PORT", "9100")
		t.Setenv("ALLOCATION_MAX_RETRIES", "5")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, BackendDynamoDB, cfg.Storage.Backend)
		assert.Equal(t, "leads", cfg.DynamoDB.LeadsTable)
		assert.Equal(t, "9100", cfg.HTTP.Port)
		assert.False(t, cfg.HTTP.MetricsEnabled)
		assert.Equal(t, 5, cfg.Ledger.AllocationMaxRetries)
	})

	t.Run("DynamoDB Without Tables", func(t *testing.T) {
		t.Setenv(FileEnv, "")
		t.Setenv("STORAGE_BACKEND", "dynamodb")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "table name")
	})

	t.Run("Bad Number", func(t *testing.T) {
		t.Setenv(FileEnv, "")
		t.Setenv("ALLOCATION_MAX_RETRIES", "lots")

		_, err := Load()

		assert.ErrorContains(t, err, "ALLOCATION_MAX_RETRIES")
	})

	t.Run("Missing File", func(t *testing.T) {
		t.Setenv(FileEnv, filepath.Join(t.TempDir(), "absent.toml"))

		_, err := Load()

		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Key Id Without Secret", func(t *testing.T) {
		t.Setenv(FileEnv, "")
		t.Setenv("RAZORPAY_KEY_ID", "rzp_test_1")

		_, err := Load()

		assert.ErrorContains(t, err, "RAZORPAY_KEY_SECRET")
	})
}
