package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{EnvLedgerFile, EnvCurrency, EnvLogLevel} {
		unset(t, k)
	}
	got, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{LedgerFile: DefaultLedgerFile, Currency: DefaultCurrency, LogLevel: zerolog.WarnLevel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	for _, k := range []string{EnvLedgerFile, EnvCurrency, EnvLogLevel} {
		unset(t, k)
	}
	t.Setenv(EnvLogLevel, "debug") // wins over the file.
	env := filepath.Join(t.TempDir(), ".env")
	content := "HOUSEHOLD_LEDGER_FILE=family.jsonl\nHOUSEHOLD_CURRENCY=EUR\nHOUSEHOLD_LOG_LEVEL=error\n"
	if err := os.WriteFile(env, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(env)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{LedgerFile: "family.jsonl", Currency: "EUR", LogLevel: zerolog.DebugLevel}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "currency", key: EnvCurrency, val: "REAL"},
		{name: "log level", key: EnvLogLevel, val: "loud"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{EnvLedgerFile, EnvCurrency, EnvLogLevel} {
				unset(t, k)
			}
			t.Setenv(tc.key, tc.val)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("Load() succeeded, want an error")
			}
		})
	}
}
