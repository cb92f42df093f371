// Package config loads application configuration with precedence
// environment > YAML file > defaults, and builds the application logger.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `yaml:"api" envconfig:"API"`
	Cache   CacheConfig   `yaml:"cache" envconfig:"CACHE"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// APIConfig configures the FiscalData fetch collaborator
type APIConfig struct {
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://api.fiscaldata.treasury.gov/services/api/fiscal_service/v1/accounting/od/auctions_query" validate:"required,url"`
	PageSize     int           `yaml:"page_size" envconfig:"PAGE_SIZE" default:"10000" validate:"min=1,max=10000"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
	RateLimitRPS float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"5" validate:"gt=0"`
	MaxRetries   int           `yaml:"max_retries" envconfig:"MAX_RETRIES" default:"3" validate:"min=0"`
}

// CacheConfig configures the on-disk auction cache
type CacheConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"4m"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// Load builds the configuration with precedence environment > config file
// > defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	// Defaults plus any environment overrides.
	if err := envconfig.Process("USTPANEL", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config from file: %w", err)
		}
		mergeFile(&cfg, fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFromFile parses a YAML configuration file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile overlays file values onto cfg. A field set in the environment
// keeps its env value; a field absent from the file keeps its default.
func mergeFile(cfg, file *Config) {
	envSet := func(key string) bool {
		_, ok := os.LookupEnv("USTPANEL_" + key)
		return ok
	}

	if file.API.BaseURL != "" && !envSet("API_BASE_URL") {
		cfg.API.BaseURL = file.API.BaseURL
	}
	if file.API.PageSize != 0 && !envSet("API_PAGE_SIZE") {
		cfg.API.PageSize = file.API.PageSize
	}
	if file.API.Timeout != 0 && !envSet("API_TIMEOUT") {
		cfg.API.Timeout = file.API.Timeout
	}
	if file.API.RateLimitRPS != 0 && !envSet("API_RATE_LIMIT_RPS") {
		cfg.API.RateLimitRPS = file.API.RateLimitRPS
	}
	if file.API.MaxRetries != 0 && !envSet("API_MAX_RETRIES") {
		cfg.API.MaxRetries = file.API.MaxRetries
	}
	if file.Cache.Dir != "" && !envSet("CACHE_DIR") {
		cfg.Cache.Dir = file.Cache.Dir
	}
	if file.Server.Port != 0 && !envSet("SERVER_PORT") {
		cfg.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		cfg.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		cfg.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 && !envSet("SERVER_IDLE_TIMEOUT") {
		cfg.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.RequestTimeout != 0 && !envSet("SERVER_REQUEST_TIMEOUT") {
		cfg.Server.RequestTimeout = file.Server.RequestTimeout
	}
	if file.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		cfg.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		cfg.Logging.Format = file.Logging.Format
	}
}

// Validate checks the configuration against its constraint tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
