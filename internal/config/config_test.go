package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Arrange: required secret, everything else defaulted
	t.Setenv("DB_PASSWORD", "secret")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "zoneaudit", cfg.Database.Name)
	assert.Equal(t, 2, cfg.Database.PoolMin)
	assert.Equal(t, 10, cfg.Database.PoolMax)

	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)

	assert.Equal(t, "https://portsmouthnh.mapgeo.io", cfg.Fetch.MapGeoBaseURL)
	assert.Equal(t, "http://gis.vgsi.com/PortsmouthNH", cfg.Fetch.VGSIBaseURL)
	assert.Equal(t, 20, cfg.Fetch.Concurrency)
	assert.Equal(t, 15*time.Second, cfg.Fetch.RequestTimeout)

	assert.Equal(t, 10, cfg.Analysis.ExampleCap)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("FETCH_CONCURRENCY", "5")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ANALYSIS_EXAMPLE_CAP", "5")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, 5, cfg.Fetch.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Fetch.RequestTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Analysis.ExampleCap)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080", Env: "development"},
			Database: DatabaseConfig{
				Host: "localhost", Port: "5432", Name: "zoneaudit",
				User: "postgres", Password: "pw", PoolMin: 2, PoolMax: 10,
			},
			Fetch: FetchConfig{
				MapGeoBaseURL:  "https://example.mapgeo.io",
				VGSIBaseURL:    "http://gis.example.com",
				Concurrency:    20,
				RequestTimeout: 15 * time.Second,
			},
			Analysis: AnalysisConfig{ExampleCap: 10},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "Missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "Missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "DB_HOST is required",
		},
		{
			name:    "Missing database name",
			mutate:  func(c *Config) { c.Database.Name = "" },
			wantErr: "DB_NAME is required",
		},
		{
			name:    "Negative pool min",
			mutate:  func(c *Config) { c.Database.PoolMin = -1 },
			wantErr: "DB_POOL_MIN must be non-negative",
		},
		{
			name:    "Pool min exceeds max",
			mutate:  func(c *Config) { c.Database.PoolMin = 20 },
			wantErr: "DB_POOL_MIN must be less than or equal to DB_POOL_MAX",
		},
		{
			name:    "Missing MapGeo URL",
			mutate:  func(c *Config) { c.Fetch.MapGeoBaseURL = "" },
			wantErr: "MAPGEO_BASE_URL is required",
		},
		{
			name:    "Missing VGSI URL",
			mutate:  func(c *Config) { c.Fetch.VGSIBaseURL = "" },
			wantErr: "VGSI_BASE_URL is required",
		},
		{
			name:    "Zero concurrency",
			mutate:  func(c *Config) { c.Fetch.Concurrency = 0 },
			wantErr: "FETCH_CONCURRENCY must be at least 1",
		},
		{
			name:    "Zero timeout",
			mutate:  func(c *Config) { c.Fetch.RequestTimeout = 0 },
			wantErr: "FETCH_TIMEOUT must be positive",
		},
		{
			name:    "Zero example cap",
			mutate:  func(c *Config) { c.Analysis.ExampleCap = 0 },
			wantErr: "ANALYSIS_EXAMPLE_CAP must be at least 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()

			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single origin",
			input:    "http://localhost:3000",
			expected: []string{"http://localhost:3000"},
		},
		{
			name:     "Multiple origins with spaces",
			input:    "http://a.example.com, http://b.example.com",
			expected: []string{"http://a.example.com", "http://b.example.com"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Trailing comma",
			input:    "http://a.example.com,",
			expected: []string{"http://a.example.com"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseOrigins(tc.input))
		})
	}
}
