package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
)

// DefaultFiles are the YAML files consulted by Load, in order. Missing files
// are skipped.
var DefaultFiles = []string{"config.yaml", "/etc/voucherhub/config.yaml"}

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `env:"SERVER" yaml:"server"`
	Database  DatabaseConfig  `env:"DB" yaml:"database"`
	Logger    LoggerConfig    `env:"LOG" yaml:"log"`
	Auth      AuthConfig      `env:"AUTH" yaml:"auth"`
	S3        S3Config        `env:"S3" yaml:"s3"`
	Blacklist BlacklistConfig `env:"BLACKLIST" yaml:"blacklist"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `env:"HOST" yaml:"host" default:"0.0.0.0"`
	Port            int           `env:"PORT" yaml:"port" default:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"HOST" yaml:"host" default:"localhost"`
	Port            int    `env:"PORT" yaml:"port" default:"5432"`
	User            string `env:"USER" yaml:"user" default:"postgres"`
	Password        string `env:"PASSWORD" yaml:"password"`
	Database        string `env:"NAME" yaml:"name" default:"voucherhub"`
	MaxConnections  int    `env:"MAX_CONNECTIONS" yaml:"max_connections" default:"25"`
	MinConnections  int    `env:"MIN_CONNECTIONS" yaml:"min_connections" default:"5"`
	MaxConnLifetime int    `env:"MAX_CONN_LIFETIME" yaml:"max_conn_lifetime" default:"300"` // seconds
	Migrate         bool   `env:"MIGRATE" yaml:"migrate" default:"true"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LEVEL" yaml:"level" default:"info"`
	Format string `env:"FORMAT" yaml:"format" default:"json"` // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string `env:"API_KEY" yaml:"api_key"`
}

// S3Config holds AWS S3 configuration for blacklist files.
type S3Config struct {
	Enabled bool   `env:"ENABLED" yaml:"enabled" default:"false"`
	Bucket  string `env:"BUCKET" yaml:"bucket"`
	Region  string `env:"REGION" yaml:"region" default:"us-east-1"`
	Prefix  string `env:"PREFIX" yaml:"prefix" default:"blacklist/"` // Path prefix within bucket
}

// BlacklistConfig lists the blacklist files merged at startup.
type BlacklistConfig struct {
	Files []string `env:"FILES" yaml:"files"`
}

// Load loads configuration from defaults, DefaultFiles and environment variables.
func Load() (*Config, error) {
	return LoadFiles(DefaultFiles...)
}

// LoadFiles loads configuration like Load but reads the given YAML files.
func LoadFiles(files ...string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags:        true,
		AllowUnknownEnvs: true,
		Files:            files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})

	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	for _, file := range c.Blacklist.Files {
		if !strings.HasSuffix(file, ".csv") && !strings.HasSuffix(file, ".csv.gz") {
			return fmt.Errorf("invalid blacklist file: %s (must be .csv or .csv.gz)", file)
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
