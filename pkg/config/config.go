package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config holds all application configuration
type Config struct {
	Environment string            `koanf:"environment" validate:"required"`
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Redis       RedisConfig       `koanf:"redis"`
	Search      SearchConfig      `koanf:"search"`
	Trending    TrendingConfig    `koanf:"trending"`
	Geolocation GeolocationConfig `koanf:"geolocation"`
	RateLimit   RateLimitConfig   `koanf:"ratelimit"`
	CORS        CORSConfig        `koanf:"cors"`
	OTEL        OTELConfig        `koanf:"otel"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// SearchConfig holds search engine configuration
type SearchConfig struct {
	CacheTTLSeconds int           `koanf:"cache_ttl_seconds" validate:"min=1"`
	Timeout         time.Duration `koanf:"timeout"`
	DefaultLimit    int           `koanf:"default_limit" validate:"min=1"`
	MaxLimit        int           `koanf:"max_limit" validate:"gtefield=DefaultLimit"`
}

// TrendingConfig holds trending feed configuration
type TrendingConfig struct {
	Timezone string `koanf:"timezone" validate:"required"`
}

// GeolocationConfig holds geolocation provider configuration
type GeolocationConfig struct {
	Provider string `koanf:"provider" validate:"oneof=mock google"`
	APIKey   string `koanf:"api_key"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"min=1"`
	Window   time.Duration `koanf:"window"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string `koanf:"service_name"`
	ServiceVersion string `koanf:"service_version"`
	Endpoint       string `koanf:"endpoint"`
	Enabled        bool   `koanf:"enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Database:        "venue_discovery",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    6379,
		},
		Search: SearchConfig{
			CacheTTLSeconds: 300,
			Timeout:         10 * time.Second,
			DefaultLimit:    20,
			MaxLimit:        100,
		},
		Trending: TrendingConfig{
			Timezone: "UTC",
		},
		Geolocation: GeolocationConfig{
			Provider: "mock",
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 100,
			Window:   time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		OTEL: OTELConfig{
			ServiceName:    "venue-discovery",
			ServiceVersion: "1.0.0",
		},
	}
}

// envKeys maps environment variables onto koanf keys.
var envKeys = map[string]string{
	"app_env":              "environment",
	"server_host":          "server.host",
	"server_port":          "server.port",
	"db_host":              "database.host",
	"db_port":              "database.port",
	"db_user":              "database.user",
	"db_password":          "database.password",
	"db_name":              "database.name",
	"db_sslmode":           "database.sslmode",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"redis_enabled":        "redis.enabled",
	"redis_host":           "redis.host",
	"redis_port":           "redis.port",
	"redis_password":       "redis.password",
	"redis_db":             "redis.db",
	"search_cache_ttl":     "search.cache_ttl_seconds",
	"search_timeout":       "search.timeout",
	"search_default_limit": "search.default_limit",
	"search_max_limit":     "search.max_limit",
	"trending_timezone":    "trending.timezone",
	"geolocation_provider": "geolocation.provider",
	"geolocation_api_key":  "geolocation.api_key",
	"rate_limit_enabled":   "ratelimit.enabled",
	"rate_limit_requests":  "ratelimit.requests",
	"rate_limit_window":    "ratelimit.window",
	"cors_allowed_origins": "cors.allowed_origins",
	"otel_service_name":    "otel.service_name",
	"otel_service_version": "otel.service_version",
	"otel_endpoint":        "otel.endpoint",
	"otel_enabled":         "otel.enabled",
}

func envTransformFunc(key string) string {
	return envKeys[strings.ToLower(key)]
}

// Load loads configuration from defaults, an optional YAML file and the
// environment, in that order of precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sliceConfigPaths are the keys whose environment values are comma-separated lists.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

// processSliceFields splits comma-separated string values of list keys.
// Values that are already slices (defaults, YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks the struct constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.Trending.Timezone); err != nil {
		return fmt.Errorf("invalid trending timezone %q: %w", c.Trending.Timezone, err)
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *TrendingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
