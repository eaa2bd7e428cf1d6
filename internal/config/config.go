// Package config defines all configuration structures for LeaseIQ.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
)

// Version is the service version reported by the health endpoint and startup
// log line.  Overridden at build time via -ldflags.
var Version = "dev"

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitPerMin int           `mapstructure:"rate_limit_per_min"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the job store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds Redis connection parameters for the report cache.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	DefaultTTL  time.Duration `mapstructure:"default_ttl"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds producer/consumer parameters for the analysis pipeline.
type KafkaConfig struct {
	Brokers        []string `mapstructure:"brokers"`
	GroupID        string   `mapstructure:"group_id"`
	UploadedTopic  string   `mapstructure:"uploaded_topic"`
	CompletedTopic string   `mapstructure:"completed_topic"`
	BatchSize      int      `mapstructure:"batch_size"`
	MaxRetries     int      `mapstructure:"max_retries"`
}

// MinIOConfig holds object-storage parameters for raw lease documents.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// OpenSearchConfig holds cluster parameters for report full-text search.
type OpenSearchConfig struct {
	Addresses          []string `mapstructure:"addresses"`
	User               string   `mapstructure:"user"`
	Password           string   `mapstructure:"password"`
	InsecureSkipVerify bool     `mapstructure:"insecure_skip_verify"`
	IndexName          string   `mapstructure:"index_name"`
}

// MarketConfig controls the comparable-rents dataset used by the market
// comparator.  When DatasetPath is empty the embedded regional dataset is
// used.
type MarketConfig struct {
	DatasetPath string `mapstructure:"dataset_path"`
	Region      string `mapstructure:"region"`
}

// AnalysisConfig holds rules-engine policy switches.
type AnalysisConfig struct {
	// CompliancePolicy decides how rules whose inputs are absent affect the
	// compliance score: "exclude" leaves the score untouched, "penalize"
	// deducts half of each unevaluable rule's penalty because missing data is
	// itself a compliance concern.
	CompliancePolicy string `mapstructure:"compliance_policy"` // "exclude" | "penalize"
}

// Config is the root configuration object.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Kafka      KafkaConfig       `mapstructure:"kafka"`
	MinIO      MinIOConfig       `mapstructure:"minio"`
	OpenSearch OpenSearchConfig  `mapstructure:"opensearch"`
	Market     MarketConfig      `mapstructure:"market"`
	Analysis   AnalysisConfig    `mapstructure:"analysis"`
	Log        logging.LogConfig `mapstructure:"log"`
}

// Validate checks cross-field invariants after defaults have been applied.
// The first violated invariant is returned; the caller should treat any error
// as fatal at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("config: server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("config: database.max_conns must be >= 1, got %d", c.Database.MaxConns)
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers is required")
	}
	if c.Kafka.UploadedTopic == "" || c.Kafka.CompletedTopic == "" {
		return fmt.Errorf("config: kafka topics are required")
	}

	if c.MinIO.Endpoint == "" {
		return fmt.Errorf("config: minio.endpoint is required")
	}
	if c.MinIO.Bucket == "" {
		return fmt.Errorf("config: minio.bucket is required")
	}

	if len(c.OpenSearch.Addresses) == 0 {
		return fmt.Errorf("config: opensearch.addresses is required")
	}
	if c.OpenSearch.IndexName == "" {
		return fmt.Errorf("config: opensearch.index_name is required")
	}

	switch c.Analysis.CompliancePolicy {
	case "exclude", "penalize":
	default:
		return fmt.Errorf("config: analysis.compliance_policy %q is invalid; expected exclude|penalize", c.Analysis.CompliancePolicy)
	}

	return nil
}

// DSN assembles the PostgreSQL connection string for pgx.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}
