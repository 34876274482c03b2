// Package config reads the household settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/household"
	"github.com/etnz/household/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables.
const (
	EnvLedgerFile = "HOUSEHOLD_LEDGER_FILE"
	EnvCurrency   = "HOUSEHOLD_CURRENCY"
	EnvLogLevel   = "HOUSEHOLD_LOG_LEVEL"
)

// Defaults applied when a variable is unset.
const (
	DefaultLedgerFile = "household.jsonl"
	DefaultCurrency   = "BRL"
)

// Config holds the household settings.
type Config struct {
	LedgerFile string         // path of the JSONL ledger.
	Currency   string         // domestic currency, used when a ledger line has none.
	LogLevel   zerolog.Level
}

// Load reads the configuration. The given .env files (".env" when none) are
// loaded first; they never override variables already set, and missing files
// are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load %s: %w", f, err)
		}
	}

	cfg := Config{
		LedgerFile: getenv(EnvLedgerFile, DefaultLedgerFile),
		Currency:   getenv(EnvCurrency, DefaultCurrency),
	}
	if err := household.ValidateCurrency(cfg.Currency); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvCurrency, err)
	}
	level, err := logger.ParseLevel(os.Getenv(EnvLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	cfg.LogLevel = level
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
