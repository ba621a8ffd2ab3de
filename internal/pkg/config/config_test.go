package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVICE_NAME", "ENV", "HTTP_ADDR", "STORE_DRIVER", "LOCALE", "LOW_STOCK_THRESHOLD", "SEED_CATALOG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "minishop", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.True(t, cfg.SeedCatalog)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_DSN", "file:test.db")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("LOCALE", "fr")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "file:test.db", cfg.SQLiteDSN)
	assert.Equal(t, 2, cfg.LowStockThreshold)
	assert.False(t, cfg.SeedCatalog)
	assert.Equal(t, "fr", cfg.Locale)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{StoreDriver: StoreMemory, LowStockThreshold: -1}.Validate())
	assert.Error(t, Config{StoreDriver: StoreSQLite}.Validate())
	assert.NoError(t, Config{StoreDriver: StoreMemory}.Validate())
}
