// Package config loads proteinflip settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Add amount limits of the home screen slider.
const (
	MinAdd = 1
	MaxAdd = 150
)

// Config holds all proteinflip configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// StorageConfig selects and configures the ledger repository.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres, memory
	Path   string `yaml:"path"`   // sqlite database file
	DSN    string `yaml:"dsn"`    // postgres connection string
}

// HTTPConfig configures the JSON API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// PasswordHash is a bcrypt hash; empty disables the password check.
	PasswordHash string `yaml:"password_hash"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	DefaultAdd int   `yaml:"default_add"`
	QuickAdds  []int `yaml:"quick_adds"`
}

// DataDir returns the directory holding the default database and config.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "proteinflip")
	}
	return ".proteinflip"
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(DataDir(), "ledger.db"),
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			DefaultAdd: 25,
			QuickAdds:  []int{20, 30, 40},
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) applyEnvOverrides() {
	c.Storage.Driver = env("PROTEINFLIP_DRIVER", c.Storage.Driver)
	c.Storage.Path = env("PROTEINFLIP_DB", c.Storage.Path)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Storage.DSN = dsn
		if os.Getenv("PROTEINFLIP_DRIVER") == "" {
			c.Storage.Driver = DriverPostgres
		}
	}
	c.HTTP.Addr = env("ADDR", c.HTTP.Addr)
	c.HTTP.PasswordHash = env("PROTEINFLIP_PASSWORD_HASH", c.HTTP.PasswordHash)
	c.Logging.Level = env("PROTEINFLIP_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = env("PROTEINFLIP_LOG_FILE", c.Logging.File)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn (or DATABASE_URL) is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}

	if c.UI.DefaultAdd < MinAdd || c.UI.DefaultAdd > MaxAdd {
		return fmt.Errorf("ui.default_add must be within [%d, %d]", MinAdd, MaxAdd)
	}
	for _, q := range c.UI.QuickAdds {
		if q < MinAdd || q > MaxAdd {
			return fmt.Errorf("ui.quick_adds must be within [%d, %d], got %d", MinAdd, MaxAdd, q)
		}
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
