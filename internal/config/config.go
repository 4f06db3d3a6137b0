package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Reports     ReportsConfig     `mapstructure:"reports"`
	S3          S3Config          `mapstructure:"s3"`
	ML          MLConfig          `mapstructure:"ml"`
	Performance PerformanceConfig `mapstructure:"performance"`
	Inventory   InventoryConfig   `mapstructure:"inventory"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds database-related configuration.
// Path is used by the sqlite driver, the network settings by postgres.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"name"`
	MaxConnections  int    `mapstructure:"max_connections"`
	MinConnections  int    `mapstructure:"min_connections"`
	MaxConnLifetime int    `mapstructure:"max_conn_lifetime"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// ReportsConfig controls generated report files.
type ReportsConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	CompanyName string `mapstructure:"company_name"`
	Footer      string `mapstructure:"footer"`
}

// S3Config holds AWS S3 configuration for report uploads.
type S3Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	Prefix  string `mapstructure:"prefix"` // Path prefix within bucket (e.g., "reports/")
}

// MLConfig controls training of the sales model.
type MLConfig struct {
	ModelDir   string  `mapstructure:"model_dir"`
	TestSize   float64 `mapstructure:"test_size"`
	RandomSeed uint64  `mapstructure:"random_seed"`
}

// PerformanceConfig holds caching and query limits.
type PerformanceConfig struct {
	CacheTTL     int `mapstructure:"cache_ttl"`     // seconds
	QueryTimeout int `mapstructure:"query_timeout"` // seconds
}

// InventoryConfig holds stock alert thresholds.
type InventoryConfig struct {
	LowStockThreshold    int `mapstructure:"low_stock_threshold"`
	MediumStockThreshold int `mapstructure:"medium_stock_threshold"`
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.host":                      "SERVER_HOST",
	"server.port":                      "SERVER_PORT",
	"database.driver":                  "DB_DRIVER",
	"database.path":                    "DB_PATH",
	"database.host":                    "DB_HOST",
	"database.port":                    "DB_PORT",
	"database.user":                    "DB_USER",
	"database.password":                "DB_PASSWORD",
	"database.name":                    "DB_NAME",
	"database.max_connections":         "DB_MAX_CONNECTIONS",
	"database.min_connections":         "DB_MIN_CONNECTIONS",
	"database.max_conn_lifetime":       "DB_MAX_CONN_LIFETIME",
	"logger.level":                     "LOG_LEVEL",
	"logger.format":                    "LOG_FORMAT",
	"auth.enabled":                     "AUTH_ENABLED",
	"auth.api_key":                     "API_KEY",
	"reports.output_dir":               "REPORTS_DIR",
	"reports.company_name":             "REPORTS_COMPANY_NAME",
	"reports.footer":                   "REPORTS_FOOTER",
	"s3.enabled":                       "S3_ENABLED",
	"s3.bucket":                        "S3_BUCKET",
	"s3.region":                        "S3_REGION",
	"s3.prefix":                        "S3_PREFIX",
	"ml.model_dir":                     "ML_MODEL_DIR",
	"ml.test_size":                     "ML_TEST_SIZE",
	"ml.random_seed":                   "ML_RANDOM_SEED",
	"performance.cache_ttl":            "CACHE_TTL",
	"performance.query_timeout":        "QUERY_TIMEOUT",
	"inventory.low_stock_threshold":    "LOW_STOCK_THRESHOLD",
	"inventory.medium_stock_threshold": "MEDIUM_STOCK_THRESHOLD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/business.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "bizintel")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_connections", 5)
	v.SetDefault("database.max_conn_lifetime", 300)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_key", "")

	v.SetDefault("reports.output_dir", "reports")
	v.SetDefault("reports.company_name", "Business Intelligence Inc.")
	v.SetDefault("reports.footer", "Confidential - For Internal Use Only")

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "reports/")

	v.SetDefault("ml.model_dir", "models")
	v.SetDefault("ml.test_size", 0.2)
	v.SetDefault("ml.random_seed", 42)

	v.SetDefault("performance.cache_ttl", 300)
	v.SetDefault("performance.query_timeout", 30)

	v.SetDefault("inventory.low_stock_threshold", 10)
	v.SetDefault("inventory.medium_stock_threshold", 50)
}

// Load builds the configuration from defaults, an optional YAML or JSON file
// at path, and environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.Database.Driver == "postgresql" {
		cfg.Database.Driver = DriverPostgres
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

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return errors.New("database user is required")
		}
		if c.Database.Database == "" {
			return errors.New("database name is required")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	if c.Database.MaxConnections < 1 {
		return errors.New("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 0 {
		return errors.New("database min connections must not be negative")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return errors.New("database min connections cannot exceed max connections")
	}

	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return errors.New("API key is required when authentication is enabled")
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

	if c.Reports.OutputDir == "" {
		return errors.New("reports output directory is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return errors.New("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return errors.New("S3 region is required when S3 is enabled")
		}
	}

	if c.ML.TestSize <= 0 || c.ML.TestSize >= 1 {
		return fmt.Errorf("invalid ML test size: %g (must be between 0 and 1)", c.ML.TestSize)
	}

	if c.Performance.CacheTTL < 0 {
		return errors.New("cache TTL must not be negative")
	}

	if c.Inventory.LowStockThreshold < 0 || c.Inventory.MediumStockThreshold < c.Inventory.LowStockThreshold {
		return errors.New("stock thresholds must satisfy 0 <= low <= medium")
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

// SQLiteDSN returns the go-sqlite3 data source name with foreign keys enforced.
func (c *DatabaseConfig) SQLiteDSN() string {
	return c.Path + "?_foreign_keys=1&_journal_mode=WAL&_busy_timeout=5000"
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
