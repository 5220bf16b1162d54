package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"banking-ledger/internal/ledger"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Journal JournalConfig `yaml:"journal"`
	Logger  LoggerConfig  `yaml:"logger"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// LedgerConfig is the account policy applied when accounts are opened
type LedgerConfig struct {
	BranchCode           string `yaml:"branch_code"`
	WithdrawalLimit      string `yaml:"withdrawal_limit"`
	WithdrawalCountLimit int    `yaml:"withdrawal_count_limit"`
	WithdrawalWindow     string `yaml:"withdrawal_window"` // daily or all-time
	Timezone             string `yaml:"timezone"`
}

// JournalConfig points at the optional Postgres database ledger entries are exported to
type JournalConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Database     string        `yaml:"database"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Ledger: LedgerConfig{
			BranchCode:           ledger.DefaultBranchCode,
			WithdrawalLimit:      "500",
			WithdrawalCountLimit: 3,
			WithdrawalWindow:     ledger.WindowDaily.String(),
			Timezone:             "Local",
		},
		Journal: JournalConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Database:     "ledger",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
			WriteTimeout: 5 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by CONFIG_FILE
// if set, and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getDurationEnv("IDLE_TIMEOUT", c.Server.IdleTimeout)

	c.Ledger.BranchCode = getEnv("BRANCH_CODE", c.Ledger.BranchCode)
	c.Ledger.WithdrawalLimit = getEnv("WITHDRAWAL_LIMIT", c.Ledger.WithdrawalLimit)
	c.Ledger.WithdrawalCountLimit = getIntEnv("WITHDRAWAL_COUNT_LIMIT", c.Ledger.WithdrawalCountLimit)
	c.Ledger.WithdrawalWindow = getEnv("WITHDRAWAL_WINDOW", c.Ledger.WithdrawalWindow)
	c.Ledger.Timezone = getEnv("LEDGER_TIMEZONE", c.Ledger.Timezone)

	c.Journal.Enabled = getBoolEnv("JOURNAL_ENABLED", c.Journal.Enabled)
	c.Journal.Host = getEnv("DB_HOST", c.Journal.Host)
	c.Journal.Port = getEnv("DB_PORT", c.Journal.Port)
	c.Journal.User = getEnv("DB_USER", c.Journal.User)
	c.Journal.Password = getEnv("DB_PASSWORD", c.Journal.Password)
	c.Journal.Database = getEnv("DB_NAME", c.Journal.Database)
	c.Journal.SSLMode = getEnv("DB_SSLMODE", c.Journal.SSLMode)
	c.Journal.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", c.Journal.MaxOpenConns)
	c.Journal.MaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", c.Journal.MaxIdleConns)
	c.Journal.WriteTimeout = getDurationEnv("JOURNAL_WRITE_TIMEOUT", c.Journal.WriteTimeout)

	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnv("LOG_FORMAT", c.Logger.Format)
}

// Validate checks the values that would otherwise only fail once the ledger is in use
func (c *Config) Validate() error {
	if _, err := c.Ledger.ToLedger(); err != nil {
		return err
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q: must be json or console", c.Logger.Format)
	}
	return nil
}

// ToLedger converts the policy into the ledger's own configuration
func (c *LedgerConfig) ToLedger() (ledger.Config, error) {
	cfg := ledger.DefaultConfig()

	if c.BranchCode == "" {
		return cfg, errors.New("branch code cannot be empty")
	}
	cfg.BranchCode = c.BranchCode

	limit, err := decimal.NewFromString(c.WithdrawalLimit)
	if err != nil {
		return cfg, fmt.Errorf("invalid withdrawal limit %q: %w", c.WithdrawalLimit, err)
	}
	if limit.IsNegative() {
		return cfg, fmt.Errorf("withdrawal limit cannot be negative: %s", limit)
	}
	if c.WithdrawalCountLimit < 1 {
		return cfg, fmt.Errorf("withdrawal count limit must be at least 1, got %d", c.WithdrawalCountLimit)
	}
	window, err := ledger.ParseWindow(c.WithdrawalWindow)
	if err != nil {
		return cfg, err
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	cfg.Limits = ledger.Limits{
		WithdrawalAmount: limit,
		WithdrawalCount:  c.WithdrawalCountLimit,
		Window:           window,
		Location:         loc,
	}
	return cfg, nil
}

func (c *JournalConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
