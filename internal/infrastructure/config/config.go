// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Session    SessionConfig    `mapstructure:"session"`
	Menu       MenuConfig       `mapstructure:"menu"`
	Export     ExportConfig     `mapstructure:"export"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS      bool          `mapstructure:"enable_cors"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`

	// Compression applies brotli or gzip to responses of at least
	// CompressionMinBytes
	EnableCompression   bool `mapstructure:"enable_compression"`
	CompressionMinBytes int  `mapstructure:"compression_min_bytes"`
}

// Catalog storage drivers
const (
	CatalogDriverFile     = "file"
	CatalogDriverSQLite   = "sqlite"
	CatalogDriverPostgres = "postgres"
)

// CatalogConfig selects where the recipe catalog lives.
// Path is used by the file and sqlite drivers, DSN by postgres.
type CatalogConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	ReplicaDSNs     []string      `mapstructure:"replica_dsns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// SessionConfig controls where per-session menus are kept
type SessionConfig struct {
	Backend    string        `mapstructure:"backend"`
	TTL        time.Duration `mapstructure:"ttl"`
	CookieName string        `mapstructure:"cookie_name"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
	Secure     bool          `mapstructure:"secure"`
}

// MenuConfig holds generation defaults
type MenuConfig struct {
	DefaultServingSize int      `mapstructure:"default_serving_size"`
	ServingSizes       []int    `mapstructure:"serving_sizes"`
	WeekDays           []string `mapstructure:"week_days"`
}

// ExportConfig limits export formats and payload size
type ExportConfig struct {
	Formats     []string `mapstructure:"formats"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// MonitoringConfig contains monitoring configuration.
// Spans are exported over OTLP/HTTP only when TracingEndpoint is set.
type MonitoringConfig struct {
	EnableMetrics     bool    `mapstructure:"enable_metrics"`
	MetricsPath       string  `mapstructure:"metrics_path"`
	EnableTracing     bool    `mapstructure:"enable_tracing"`
	TracingEndpoint   string  `mapstructure:"tracing_endpoint"`
	TracingSampleRate float64 `mapstructure:"tracing_sample_rate"`
	HealthCheckPath   string  `mapstructure:"health_check_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/menugen")
	}

	v.SetEnvPrefix("MENUGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Menugen")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_header_bytes", 1<<20) // 1MB
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_cors", false)
	v.SetDefault("server.enable_compression", true)
	v.SetDefault("server.compression_min_bytes", 1024)

	// Catalog defaults
	v.SetDefault("catalog.driver", CatalogDriverFile)
	v.SetDefault("catalog.path", "data/recipes.json")
	v.SetDefault("catalog.max_open_conns", 10)
	v.SetDefault("catalog.max_idle_conns", 2)
	v.SetDefault("catalog.conn_max_lifetime", "1h")
	v.SetDefault("catalog.log_level", "warn")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	// Session defaults
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "menugen_session")
	v.SetDefault("session.key_prefix", "menugen:session:")

	// Menu defaults
	v.SetDefault("menu.default_serving_size", 25)
	v.SetDefault("menu.serving_sizes", []int{10, 15, 20, 25, 30, 40, 50, 75, 100})
	v.SetDefault("menu.week_days", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"})

	// Export defaults
	v.SetDefault("export.formats", []string{"text", "csv", "json", "pdf"})
	v.SetDefault("export.max_file_size", 10*1024*1024) // 10MB

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.enable_tracing", true)
	v.SetDefault("monitoring.tracing_sample_rate", 1.0)
	v.SetDefault("monitoring.health_check_path", "/health")

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 120)
	v.SetDefault("rate_limit.burst_size", 20)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Menu.DefaultServingSize < 10 || c.Menu.DefaultServingSize > 100 {
		return fmt.Errorf("menu.default_serving_size must be between 10 and 100")
	}

	switch c.Catalog.Driver {
	case CatalogDriverFile, CatalogDriverSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the %s driver", c.Catalog.Driver)
		}
	case CatalogDriverPostgres:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("catalog.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("catalog.driver %q is not one of file, sqlite, postgres", c.Catalog.Driver)
	}

	if !slices.Contains([]string{SessionBackendMemory, SessionBackendRedis}, c.Session.Backend) {
		return fmt.Errorf("session.backend %q is not one of memory, redis", c.Session.Backend)
	}

	if c.RateLimit.Enable && (c.RateLimit.RequestsPerMin < 1 || c.RateLimit.BurstSize < 1) {
		return fmt.Errorf("rate_limit.requests_per_min and rate_limit.burst_size must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ServingSizeAllowed reports whether size is one of the configured presets
func (c *Config) ServingSizeAllowed(size int) bool {
	return slices.Contains(c.Menu.ServingSizes, size)
}
