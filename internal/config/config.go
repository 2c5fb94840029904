// Package config provides configuration management for the paper trading application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Trading TradingConfig `mapstructure:"trading"`
	Risk    RiskConfig    `mapstructure:"risk"`
	Storage StorageConfig `mapstructure:"storage"`
	Quotes  QuotesConfig  `mapstructure:"quotes"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TradingConfig holds ledger-related configuration.
type TradingConfig struct {
	InitialCash float64 `mapstructure:"initial_cash"`
	Commission  float64 `mapstructure:"commission"`
}

// RiskConfig holds advisory risk limits. Breaching them logs a warning on
// order creation; it never rejects the order.
type RiskConfig struct {
	MaxPositionSize float64 `mapstructure:"max_position_size"`
	MaxDailyLoss    float64 `mapstructure:"max_daily_loss"`
}

// StorageConfig holds persistence paths. Paths are injected into the stores at
// construction so tests can isolate storage locations.
type StorageConfig struct {
	AccountPath string `mapstructure:"account_path"`
	JournalPath string `mapstructure:"journal_path"`
}

// QuotesConfig holds quote source configuration.
type QuotesConfig struct {
	Provider string        `mapstructure:"provider"` // "sim", "yahoo"
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/paper-trader"
	}
	return filepath.Join(home, ".config", "paper-trader")
}

// Default returns the built-in defaults rooted at configDir.
func Default(configDir string) *Config {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return &Config{
		Trading: TradingConfig{
			InitialCash: 100000.0,
			Commission:  4.95,
		},
		Risk: RiskConfig{
			MaxPositionSize: 5000.0,
			MaxDailyLoss:    1000.0,
		},
		Storage: StorageConfig{
			AccountPath: filepath.Join(configDir, "paper_account.json"),
			JournalPath: filepath.Join(configDir, "journal.db"),
		},
		Quotes: QuotesConfig{
			Provider: "sim",
			Timeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(configDir, "logs", "trader.log"),
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is not an error: a template is written and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default(configDir)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("trading.initial_cash", cfg.Trading.InitialCash)
	v.SetDefault("trading.commission", cfg.Trading.Commission)
	v.SetDefault("risk.max_position_size", cfg.Risk.MaxPositionSize)
	v.SetDefault("risk.max_daily_loss", cfg.Risk.MaxDailyLoss)
	v.SetDefault("storage.account_path", cfg.Storage.AccountPath)
	v.SetDefault("storage.journal_path", cfg.Storage.JournalPath)
	v.SetDefault("quotes.provider", cfg.Quotes.Provider)
	v.SetDefault("quotes.timeout", cfg.Quotes.Timeout)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.file_path", cfg.Logging.FilePath)
	v.SetDefault("logging.max_size", cfg.Logging.MaxSize)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age", cfg.Logging.MaxAge)
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envFloat("TRADING_INITIAL_CASH"); ok {
		cfg.Trading.InitialCash = v
	}
	if v, ok := envFloat("TRADING_COMMISSION"); ok {
		cfg.Trading.Commission = v
	}
	if v, ok := envFloat("RISK_MAX_POSITION_SIZE"); ok {
		cfg.Risk.MaxPositionSize = v
	}
	if v, ok := envFloat("RISK_MAX_DAILY_LOSS"); ok {
		cfg.Risk.MaxDailyLoss = v
	}
	if v, ok := envFloat("DATA_REQUEST_TIMEOUT"); ok {
		cfg.Quotes.Timeout = time.Duration(v * float64(time.Second))
	}
	if v := os.Getenv("USE_MOCK_DATA"); v != "" {
		if mock, err := strconv.ParseBool(v); err == nil && mock {
			cfg.Quotes.Provider = "sim"
		}
	}
	if v := os.Getenv("QUOTE_PROVIDER"); v != "" {
		cfg.Quotes.Provider = v
	}
	if v := os.Getenv("PAPER_ACCOUNT_PATH"); v != "" {
		cfg.Storage.AccountPath = v
	}
}

func envFloat(name string) (float64, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Trading.InitialCash < 0 {
		return fmt.Errorf("trading.initial_cash must be non-negative")
	}
	if c.Trading.Commission < 0 {
		return fmt.Errorf("trading.commission must be non-negative")
	}
	if c.Risk.MaxPositionSize < 0 {
		return fmt.Errorf("risk.max_position_size must be non-negative")
	}
	if c.Risk.MaxDailyLoss < 0 {
		return fmt.Errorf("risk.max_daily_loss must be non-negative")
	}
	if c.Storage.AccountPath == "" {
		return fmt.Errorf("storage.account_path must be set")
	}
	if c.Quotes.Provider != "sim" && c.Quotes.Provider != "yahoo" {
		return fmt.Errorf("invalid quotes.provider: %s (must be 'sim' or 'yahoo')", c.Quotes.Provider)
	}
	if c.Quotes.Timeout <= 0 {
		return fmt.Errorf("quotes.timeout must be positive")
	}
	return nil
}
