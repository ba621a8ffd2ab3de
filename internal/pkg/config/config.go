package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	ServiceName string
	Env         string
	LogLevel    string
	LogFile     string

	HTTPAddr string

	StoreDriver string
	SQLiteDSN   string
	SeedCatalog bool

	Locale            string
	LowStockThreshold int
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName:       getEnv("SERVICE_NAME", "minishop"),
		Env:               getEnv("ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		SQLiteDSN:         getEnv("SQLITE_DSN", "file:minishop.db"),
		SeedCatalog:       getEnvBool("SEED_CATALOG", true),
		Locale:            getEnv("LOCALE", "en"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == StoreSQLite && c.SQLiteDSN == "" {
		return fmt.Errorf("config: SQLITE_DSN is required for the sqlite store")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("config: LOW_STOCK_THRESHOLD must be zero or greater, got %d", c.LowStockThreshold)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
