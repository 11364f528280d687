// Package config loads application configuration from environment variables
// with an optional YAML overlay file. Environment variables always win; the
// overlay exists so local development can keep a checked-in config file
// instead of a wall of exports.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment names a deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config holds everything the API server needs to run.
type Config struct {
	Environment Environment `yaml:"environment"`

	Server   Server   `yaml:"server"`
	Supabase Supabase `yaml:"supabase"`
	Storage  Storage  `yaml:"storage"`
	Catalog  Catalog  `yaml:"catalog"`
	Logging  Logging  `yaml:"logging"`
}

// Server holds HTTP server settings.
type Server struct {
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadSize   int64         `yaml:"max_upload_size" validate:"min=1"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// Supabase holds project credentials.
type Supabase struct {
	URL       string `yaml:"url" validate:"required,url"`
	AnonKey   string `yaml:"anon_key" validate:"required"`
	JWTSecret string `yaml:"jwt_secret" validate:"required"`
}

// Storage holds blob storage settings.
type Storage struct {
	Bucket       string        `yaml:"bucket" validate:"required"`
	SignedURLTTL time.Duration `yaml:"signed_url_ttl" validate:"min=1s"`
}

// Catalog holds catalog access settings.
type Catalog struct {
	// FallbackDataPath optionally points at a YAML file that replaces the
	// built-in fallback topics and resources.
	FallbackDataPath string `yaml:"fallback_data_path"`
}

// Logging holds logger settings.
type Logging struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Load builds a Config from defaults, the optional CONFIG_FILE overlay, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error. Use only in main.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Environment: Development,
		Server: Server{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadSize:   25 << 20,
			AllowedOrigins:  []string{"*"},
		},
		Storage: Storage{
			Bucket:       "downloads",
			SignedURLTTL: 60 * time.Second,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

func applyEnvironment(cfg *Config) {
	if val := os.Getenv("ENVIRONMENT"); val != "" {
		cfg.Environment = Environment(strings.ToLower(val))
	}
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if val := os.Getenv("HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		cfg.Server.AllowedOrigins = splitAndTrim(val)
	}
	if val := os.Getenv("SUPABASE_URL"); val != "" {
		cfg.Supabase.URL = val
	}
	if val := os.Getenv("SUPABASE_ANON_KEY"); val != "" {
		cfg.Supabase.AnonKey = val
	}
	if val := os.Getenv("SUPABASE_JWT_SECRET"); val != "" {
		cfg.Supabase.JWTSecret = val
	}
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		cfg.Storage.Bucket = val
	}
	if val := os.Getenv("SIGNED_URL_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Storage.SignedURLTTL = d
		}
	}
	if val := os.Getenv("FALLBACK_DATA_PATH"); val != "" {
		cfg.Catalog.FallbackDataPath = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Logging.Level = strings.ToLower(val)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
