package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Fetch    FetchConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server configuration for serve mode.
type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// RedisConfig holds the optional fetch-cache configuration. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// FetchConfig holds the data-retrieval collaborator configuration.
type FetchConfig struct {
	MapGeoBaseURL  string
	VGSIBaseURL    string
	Concurrency    int
	RequestTimeout time.Duration
	UserAgent      string
}

// AnalysisConfig holds tunables for the analysis run.
type AnalysisConfig struct {
	ExampleCap int
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides defaults so that an analysis
// against the public Portsmouth data sources works out of the box.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "zoneaudit")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", "24h")

	v.SetDefault("MAPGEO_BASE_URL", "https://portsmouthnh.mapgeo.io")
	v.SetDefault("VGSI_BASE_URL", "http://gis.vgsi.com/PortsmouthNH")
	v.SetDefault("FETCH_CONCURRENCY", 20)
	v.SetDefault("FETCH_TIMEOUT", "15s")
	v.SetDefault("FETCH_USER_AGENT", "zoneaudit/1.0")

	v.SetDefault("ANALYSIS_EXAMPLE_CAP", 10)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Env:         v.GetString("ENV"),
			CORSOrigins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		Fetch: FetchConfig{
			MapGeoBaseURL:  v.GetString("MAPGEO_BASE_URL"),
			VGSIBaseURL:    v.GetString("VGSI_BASE_URL"),
			Concurrency:    v.GetInt("FETCH_CONCURRENCY"),
			RequestTimeout: v.GetDuration("FETCH_TIMEOUT"),
			UserAgent:      v.GetString("FETCH_USER_AGENT"),
		},
		Analysis: AnalysisConfig{
			ExampleCap: v.GetInt("ANALYSIS_EXAMPLE_CAP"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	if c.Fetch.MapGeoBaseURL == "" {
		return fmt.Errorf("MAPGEO_BASE_URL is required")
	}
	if c.Fetch.VGSIBaseURL == "" {
		return fmt.Errorf("VGSI_BASE_URL is required")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}

	if c.Analysis.ExampleCap < 1 {
		return fmt.Errorf("ANALYSIS_EXAMPLE_CAP must be at least 1")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
