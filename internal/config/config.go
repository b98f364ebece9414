// Package config loads service configuration from a YAML file with
// environment variable overrides. Provider credentials live here and are
// injected into the adapters at construction, never read from the process
// environment at call time.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultReadTimeout is the default server read timeout
	DefaultReadTimeout = 10 * time.Second
	// DefaultWriteTimeout is the default server write timeout
	DefaultWriteTimeout = 30 * time.Second
	// DefaultProviderTimeout is the default timeout for upstream fetches
	DefaultProviderTimeout = 10 * time.Second
	// DefaultPageSize is the default per-category page size
	DefaultPageSize = 10
	// DefaultAddress is the default listen address
	DefaultAddress = ":8080"
)

// Config is the root service configuration.
type Config struct {
	Debug       bool              `yaml:"debug"`
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Aggregation AggregationConfig `yaml:"aggregation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig holds Redis settings for the metrics tracker.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ProvidersConfig holds upstream provider credentials. A provider with
// missing credentials reports ErrProviderUnavailable on fetch and its
// category is served from the fallback dataset.
type ProvidersConfig struct {
	NewsAPI NewsAPIConfig `yaml:"newsapi"`
	TMDB    TMDBConfig    `yaml:"tmdb"`
	Spotify SpotifyConfig `yaml:"spotify"`
}

// NewsAPIConfig holds NewsAPI credentials.
type NewsAPIConfig struct {
	APIKey  string `yaml:"api_key"`
	Country string `yaml:"country"`
}

// TMDBConfig holds TMDB credentials.
type TMDBConfig struct {
	APIKey string `yaml:"api_key"`
}

// SpotifyConfig holds the Spotify client-credentials pair.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// AggregationConfig tunes the aggregation pipeline.
type AggregationConfig struct {
	PageSize        int           `yaml:"page_size"`
	ProviderTimeout time.Duration `yaml:"provider_timeout"`
}

// Load reads configuration from the YAML file at path (optional), applies
// defaults, then applies environment variable overrides, and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and returns an error if it is unusable.
func (c *Config) Validate() error {
	if c.Redis.URL == "" {
		return errors.New("redis.url is required")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Aggregation.PageSize <= 0 {
		return fmt.Errorf("aggregation.page_size must be positive, got %d", c.Aggregation.PageSize)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "aggregator"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Aggregation.PageSize == 0 {
		cfg.Aggregation.PageSize = DefaultPageSize
	}
	if cfg.Aggregation.ProviderTimeout == 0 {
		cfg.Aggregation.ProviderTimeout = DefaultProviderTimeout
	}
}

func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("AGGREGATOR_PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Providers.NewsAPI.APIKey = v
	}
	if v := os.Getenv("NEWS_API_COUNTRY"); v != "" {
		cfg.Providers.NewsAPI.Country = v
	}
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		cfg.Providers.TMDB.APIKey = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Providers.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Providers.Spotify.ClientSecret = v
	}
}

// parseBool returns true for "true", "1" and "yes" (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
