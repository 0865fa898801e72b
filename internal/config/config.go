package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// CORS configuration
	CORS CORSConfig

	// Report cache configuration
	Redis RedisConfig

	// Report export configuration
	Export ExportConfig

	// Status lifecycle options
	Lifecycle LifecycleConfig

	// Scheduled job configuration
	Jobs JobsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string // development, staging, production
	LogLevel        string // debug, info, warn, error
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	AutoMigrate        bool
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RedisConfig holds the report cache connection. An empty URL disables caching.
type RedisConfig struct {
	URL       string
	ReportTTL time.Duration
	KeyPrefix string
}

// ExportConfig selects where CSV report exports are written
type ExportConfig struct {
	Backend     string // "fs" or "s3"
	Directory   string // root directory for the fs backend
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string // optional, for MinIO and other S3-compatible stores
	S3PathStyle bool
	// Static credentials; empty falls back to the default AWS chain
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// LifecycleConfig holds optional couplings between entity lifecycles
type LifecycleConfig struct {
	// CoupleRoomStatus makes check-in occupy the room and check-out mark it dirty.
	CoupleRoomStatus bool
}

// JobsConfig holds cron schedules (seconds precision)
type JobsConfig struct {
	Enabled             bool
	OverduePaymentsSpec string
	NightlyExportSpec   string
	NightlyExport       bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ReadTimeout:     time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 15)) * time.Second,
			WriteTimeout:    time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 15)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
			AutoMigrate:        getEnvAsBool("DATABASE_AUTO_MIGRATE", true),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", ""),
			ReportTTL: time.Duration(getEnvAsInt("REPORT_CACHE_TTL", 300)) * time.Second,
			KeyPrefix: getEnv("REPORT_CACHE_PREFIX", "staydesk:report:"),
		},
		Export: ExportConfig{
			Backend:    getEnv("EXPORT_BACKEND", "fs"),
			Directory:  getEnv("EXPORT_DIR", "./exports"),
			S3Bucket:   getEnv("EXPORT_S3_BUCKET", ""),
			S3Prefix:   getEnv("EXPORT_S3_PREFIX", "reports/"),
			S3Region:   getEnv("EXPORT_S3_REGION", "us-east-1"),
			S3Endpoint: getEnv("EXPORT_S3_ENDPOINT", ""),

			S3PathStyle:       getEnvAsBool("EXPORT_S3_PATH_STYLE", false),
			S3AccessKeyID:     getEnv("EXPORT_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("EXPORT_S3_SECRET_ACCESS_KEY", ""),
		},
		Lifecycle: LifecycleConfig{
			CoupleRoomStatus: getEnvAsBool("LIFECYCLE_COUPLE_ROOM_STATUS", false),
		},
		Jobs: JobsConfig{
			Enabled:             getEnvAsBool("JOBS_ENABLED", true),
			OverduePaymentsSpec: getEnv("JOBS_OVERDUE_PAYMENTS_SPEC", "0 0 1 * * *"),
			NightlyExportSpec:   getEnv("JOBS_NIGHTLY_EXPORT_SPEC", "0 55 23 * * *"),
			NightlyExport:       getEnvAsBool("JOBS_NIGHTLY_EXPORT", false),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Export.Backend {
	case "fs":
		if c.Export.Directory == "" {
			return fmt.Errorf("EXPORT_DIR is required for the fs export backend")
		}
	case "s3":
		if c.Export.S3Bucket == "" {
			return fmt.Errorf("EXPORT_S3_BUCKET is required for the s3 export backend")
		}
	default:
		return fmt.Errorf("invalid export backend: %s (must be 'fs' or 's3')", c.Export.Backend)
	}

	if c.Redis.URL != "" && c.Redis.ReportTTL <= 0 {
		return fmt.Errorf("REPORT_CACHE_TTL must be positive when REDIS_URL is set")
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logrus.Warnf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
