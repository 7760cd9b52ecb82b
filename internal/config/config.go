package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Matrix   MatrixConfig   `yaml:"matrix"`
	Relay    RelayConfig    `yaml:"relay"`
	Journal  JournalConfig  `yaml:"journal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// DatabaseConfig points at the Postgres journal. An empty URL keeps the journal in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// HermesConfig points at the NATS bus. An empty URL disables change events.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type MatrixConfig struct {
	SeedFile string `yaml:"seed_file"`
}

type RelayConfig struct {
	BufferSize int `yaml:"buffer_size"`
}

type JournalConfig struct {
	MemoryCapacity int `yaml:"memory_capacity"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
		},
		Relay: RelayConfig{
			BufferSize: 256,
		},
		Journal: JournalConfig{
			MemoryCapacity: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the servers and relay cannot run with.
// A zero rate limit is allowed and disables limiting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Server.MetricsPort <= 0 {
		return fmt.Errorf("server.metrics_port must be positive, got %d", c.Server.MetricsPort)
	}
	// zero turns the limiter off
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must not be negative, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Relay.BufferSize <= 0 {
		return fmt.Errorf("relay.buffer_size must be positive, got %d", c.Relay.BufferSize)
	}
	if c.Journal.MemoryCapacity <= 0 {
		return fmt.Errorf("journal.memory_capacity must be positive, got %d", c.Journal.MemoryCapacity)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MATRIX_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MATRIX_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MATRIX_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MATRIX_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("MATRIX_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MATRIX_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("MATRIX_SEED_FILE"); v != "" {
		cfg.Matrix.SeedFile = v
	}
	if v := os.Getenv("MATRIX_RELAY_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Relay.BufferSize = n
		}
	}
	if v := os.Getenv("MATRIX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MATRIX_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
