package config

import "time"

// Default values applied when a field is absent from both the config file and
// the environment.
const (
	DefaultServerPort        = 8080
	DefaultServerMode        = "release"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultMaxUploadBytes    = 32 << 20 // 32 MiB
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultRateLimitPerMin   = 120
	DefaultDatabasePort      = 5432
	DefaultDatabaseSSLMode   = "disable"
	DefaultDatabaseMaxConns  = 10
	DefaultDatabaseMinConns  = 2
	DefaultConnMaxLifetime   = time.Hour
	DefaultMigrationPath     = "file://migrations"
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPoolSize     = 10
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisTTL          = time.Hour
	DefaultRedisKeyPrefix    = "leaseiq"
	DefaultKafkaGroupID      = "leaseiq-workers"
	DefaultUploadedTopic     = "leaseiq.document.uploaded"
	DefaultCompletedTopic    = "leaseiq.analysis.completed"
	DefaultKafkaBatchSize    = 100
	DefaultKafkaMaxRetries   = 3
	DefaultMinIOBucket       = "lease-documents"
	DefaultOpenSearchIndex   = "leaseiq-reports"
	DefaultMarketRegion      = "us-metro"
	DefaultCompliancePolicy  = "exclude"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
)

// ApplyDefaults fills zero-valued fields in place.  Explicit values from any
// source are never overwritten.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultServerMode
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.RateLimitPerMin == 0 {
		c.Server.RateLimitPerMin = DefaultRateLimitPerMin
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDatabasePort
	}
	if c.Database.User == "" {
		c.Database.User = "leaseiq"
	}
	if c.Database.DBName == "" {
		c.Database.DBName = "leaseiq"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDatabaseSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultDatabaseMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultDatabaseMinConns
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.Database.MigrationPath == "" {
		c.Database.MigrationPath = DefaultMigrationPath
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = DefaultRedisAddr
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = DefaultRedisPoolSize
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = DefaultRedisDialTimeout
	}
	if c.Redis.DefaultTTL == 0 {
		c.Redis.DefaultTTL = DefaultRedisTTL
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	if len(c.Kafka.Brokers) == 0 {
		c.Kafka.Brokers = []string{"localhost:9092"}
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = DefaultKafkaGroupID
	}
	if c.Kafka.UploadedTopic == "" {
		c.Kafka.UploadedTopic = DefaultUploadedTopic
	}
	if c.Kafka.CompletedTopic == "" {
		c.Kafka.CompletedTopic = DefaultCompletedTopic
	}
	if c.Kafka.BatchSize == 0 {
		c.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if c.Kafka.MaxRetries == 0 {
		c.Kafka.MaxRetries = DefaultKafkaMaxRetries
	}

	if c.MinIO.Endpoint == "" {
		c.MinIO.Endpoint = "localhost:9000"
	}
	if c.MinIO.Bucket == "" {
		c.MinIO.Bucket = DefaultMinIOBucket
	}

	if len(c.OpenSearch.Addresses) == 0 {
		c.OpenSearch.Addresses = []string{"http://localhost:9200"}
	}
	if c.OpenSearch.IndexName == "" {
		c.OpenSearch.IndexName = DefaultOpenSearchIndex
	}

	if c.Market.Region == "" {
		c.Market.Region = DefaultMarketRegion
	}

	if c.Analysis.CompliancePolicy == "" {
		c.Analysis.CompliancePolicy = DefaultCompliancePolicy
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if len(c.Log.OutputPaths) == 0 {
		c.Log.OutputPaths = []string{"stdout"}
	}
	if len(c.Log.ErrorOutputPaths) == 0 {
		c.Log.ErrorOutputPaths = []string{"stderr"}
	}
}
