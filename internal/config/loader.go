package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "LEASEIQ"

// configKeys lists every leaf key so environment overrides reach Unmarshal.
var configKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout",
	"server.max_upload_bytes", "server.shutdown_timeout", "server.cors_origins",
	"server.rate_limit_per_min",
	"database.host", "database.port", "database.user", "database.password",
	"database.db_name", "database.ssl_mode", "database.max_conns",
	"database.min_conns", "database.conn_max_lifetime", "database.migration_path",
	"redis.addr", "redis.password", "redis.db", "redis.pool_size",
	"redis.dial_timeout", "redis.default_ttl", "redis.key_prefix",
	"kafka.brokers", "kafka.group_id", "kafka.uploaded_topic",
	"kafka.completed_topic", "kafka.batch_size", "kafka.max_retries",
	"minio.endpoint", "minio.access_key", "minio.secret_key", "minio.bucket",
	"minio.use_ssl",
	"opensearch.addresses", "opensearch.user", "opensearch.password",
	"opensearch.insecure_skip_verify", "opensearch.index_name",
	"market.dataset_path", "market.region",
	"analysis.compliance_policy",
	"log.level", "log.format", "log.output_paths", "log.error_output_paths",
}

func bindEnvKeys(v *viper.Viper) {
	for _, k := range configKeys {
		_ = v.BindEnv(k)
	}
}

// Load reads configuration from the given file (optional), then overlays
// environment variables of the form LEASEIQ_SECTION_FIELD, then applies
// defaults and validates.  An empty path means env-and-defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv builds a configuration from environment variables and defaults
// alone.  Handy for tests and containerized deployments without a file.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// MustLoad is Load that panics on failure.  Intended for main() where a bad
// configuration is unrecoverable.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Watch re-reads the config file whenever it changes on disk and invokes
// onChange with the freshly parsed configuration.  Parse or validation
// failures leave the running configuration untouched and are reported via
// onError if non-nil.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	if path == "" {
		return fmt.Errorf("config: watch requires a file path")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			if onError != nil {
				onError(fmt.Errorf("config: unmarshal on reload: %w", err))
			}
			return
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
