package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Inventory InventoryConfig `yaml:"inventory"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port            int    `yaml:"port" validate:"min=1,max=65535"`
	MetricsPort     int    `yaml:"metrics_port" validate:"min=1,max=65535,nefield=Port"`
	AdminToken      string `yaml:"admin_token"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min" validate:"min=1"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// InventoryConfig points at the realtime inventory service. An empty URL disables it and
// every location is treated as out of stock.
type InventoryConfig struct {
	URL       string `yaml:"url" validate:"omitempty,url"`
	Token     string `yaml:"token"`
	TimeoutMs int    `yaml:"timeout_ms" validate:"min=0"`
}

type CatalogConfig struct {
	CacheTTLMs int `yaml:"cache_ttl_ms" validate:"min=0"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format     string `yaml:"format" validate:"omitempty,oneof=json text"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

var validate = validator.New()

func (c *Config) InventoryTimeout() time.Duration {
	return time.Duration(c.Inventory.TimeoutMs) * time.Millisecond
}

func (c *Config) CatalogCacheTTL() time.Duration {
	return time.Duration(c.Catalog.CacheTTLMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            8700,
			MetricsPort:     8701,
			RateLimitPerMin: 600,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Inventory: InventoryConfig{
			TimeoutMs: 10000,
		},
		Catalog: CatalogConfig{
			CacheTTLMs: 30000,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 5,
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

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SOURCING_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SOURCING_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SOURCING_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SOURCING_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SOURCING_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("SOURCING_INVENTORY_URL"); v != "" {
		cfg.Inventory.URL = v
	}
	if v := os.Getenv("SOURCING_INVENTORY_TOKEN"); v != "" {
		cfg.Inventory.Token = v
	}
	if v := os.Getenv("SOURCING_CATALOG_CACHE_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Catalog.CacheTTLMs = n
		}
	}
	if v := os.Getenv("SOURCING_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SOURCING_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
