package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsAndTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Trading.InitialCash != 100000 {
		t.Errorf("initial cash = %v, want 100000", cfg.Trading.InitialCash)
	}
	if cfg.Trading.Commission != 4.95 {
		t.Errorf("commission = %v, want 4.95", cfg.Trading.Commission)
	}
	if cfg.Risk.MaxPositionSize != 5000 {
		t.Errorf("max position size = %v, want 5000", cfg.Risk.MaxPositionSize)
	}
	if cfg.Quotes.Provider != "sim" {
		t.Errorf("provider = %q, want sim", cfg.Quotes.Provider)
	}
	if cfg.Quotes.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Quotes.Timeout)
	}
	if cfg.Storage.AccountPath != filepath.Join(dir, "paper_account.json") {
		t.Errorf("account path = %q", cfg.Storage.AccountPath)
	}

	// A missing config.toml is not an error; a template is written instead.
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("config template not created: %v", err)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[trading]
initial_cash = 25000.0
commission = 1.00

[quotes]
provider = "yahoo"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trading.InitialCash != 25000 {
		t.Errorf("initial cash = %v, want 25000", cfg.Trading.InitialCash)
	}
	if cfg.Trading.Commission != 1.00 {
		t.Errorf("commission = %v, want 1.00", cfg.Trading.Commission)
	}
	if cfg.Quotes.Provider != "yahoo" {
		t.Errorf("provider = %q, want yahoo", cfg.Quotes.Provider)
	}
	// Untouched sections keep their defaults.
	if cfg.Risk.MaxPositionSize != 5000 {
		t.Errorf("max position size = %v, want default 5000", cfg.Risk.MaxPositionSize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TRADING_INITIAL_CASH", "50000")
	t.Setenv("TRADING_COMMISSION", "0")
	t.Setenv("RISK_MAX_POSITION_SIZE", "10000")
	t.Setenv("DATA_REQUEST_TIMEOUT", "2.5")
	t.Setenv("PAPER_ACCOUNT_PATH", "/tmp/custom_account.json")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trading.InitialCash != 50000 {
		t.Errorf("initial cash = %v, want 50000", cfg.Trading.InitialCash)
	}
	if cfg.Trading.Commission != 0 {
		t.Errorf("commission = %v, want 0", cfg.Trading.Commission)
	}
	if cfg.Risk.MaxPositionSize != 10000 {
		t.Errorf("max position size = %v, want 10000", cfg.Risk.MaxPositionSize)
	}
	if cfg.Quotes.Timeout != 2500*time.Millisecond {
		t.Errorf("timeout = %v, want 2.5s", cfg.Quotes.Timeout)
	}
	if cfg.Storage.AccountPath != "/tmp/custom_account.json" {
		t.Errorf("account path = %q", cfg.Storage.AccountPath)
	}
}

func TestLoad_MockDataEnvForcesSimProvider(t *testing.T) {
	dir := t.TempDir()
	content := `
[quotes]
provider = "yahoo"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("USE_MOCK_DATA", "true")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Quotes.Provider != "sim" {
		t.Errorf("provider = %q, want sim", cfg.Quotes.Provider)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative cash", func(c *Config) { c.Trading.InitialCash = -1 }, true},
		{"negative commission", func(c *Config) { c.Trading.Commission = -0.01 }, true},
		{"zero commission ok", func(c *Config) { c.Trading.Commission = 0 }, false},
		{"empty account path", func(c *Config) { c.Storage.AccountPath = "" }, true},
		{"unknown provider", func(c *Config) { c.Quotes.Provider = "bloomberg" }, true},
		{"zero timeout", func(c *Config) { c.Quotes.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
