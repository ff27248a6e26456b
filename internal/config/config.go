// Package config defines the configuration of ghscrunch. Types and
// validation live here; loading is in loader.go and defaults in defaults.go.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

// Sink names accepted in output.sinks.
const (
	SinkCSV      = "csv"
	SinkMinIO    = "minio"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

// ─────────────────────────────────────────────────────────────────────────────
// Source sections
// ─────────────────────────────────────────────────────────────────────────────

// BatchConfig is one revision batch of the Japanese classification. Batches
// are applied in list order, files within a batch in list order.
type BatchConfig struct {
	// Revision labels entries whose page carries no classification date.
	Revision string   `mapstructure:"revision"`
	Files    []string `mapstructure:"files"`
}

// JapanConfig configures the revision merge workflow.
type JapanConfig struct {
	Batches []BatchConfig `mapstructure:"batches"`
	// SkipSheets is the number of leading index sheets in every workbook.
	SkipSheets int `mapstructure:"skip_sheets"`
}

// KoreaConfig configures the disambiguation workflow.
type KoreaConfig struct {
	File  string `mapstructure:"file"`
	Sheet int    `mapstructure:"sheet"`
	// FirstRow is inclusive, LastRow exclusive, both zero based.
	FirstRow int `mapstructure:"first_row"`
	LastRow  int `mapstructure:"last_row"`
	// Encoding applies to CSV exports only, e.g. "euc-kr".
	Encoding string `mapstructure:"encoding"`
	// KeepUnresolved writes rows with an unresolved category instead of
	// skipping them.
	KeepUnresolved bool `mapstructure:"keep_unresolved"`
}

// NewZealandConfig configures the redundancy workflow.
type NewZealandConfig struct {
	File          string `mapstructure:"file"`
	Sheet         int    `mapstructure:"sheet"`
	FirstRow      int    `mapstructure:"first_row"`
	Encoding      string `mapstructure:"encoding"`
	MixtureMarker string `mapstructure:"mixture_marker"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Output sections
// ─────────────────────────────────────────────────────────────────────────────

// OutputConfig selects the sinks every table is written to.
type OutputConfig struct {
	Dir   string   `mapstructure:"dir"`
	Sinks []string `mapstructure:"sinks"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN renders the connection string understood by pgx and golang-migrate.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

// MinIOConfig holds S3-compatible object storage parameters.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	// Prefix is prepended to every object name.
	Prefix string `mapstructure:"prefix"`
}

// KafkaConfig holds producer parameters for row events.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// RedisConfig holds the connection used for the run lock.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	LockTTL      time.Duration `mapstructure:"lock_ttl"`
}

// MetricsConfig configures the Prometheus push gateway. An empty
// PushGateway disables pushing; metrics are still collected.
type MetricsConfig struct {
	PushGateway string `mapstructure:"push_gateway"`
	Job         string `mapstructure:"job"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Log        logging.LogConfig `mapstructure:"log"`
	Output     OutputConfig      `mapstructure:"output"`
	Japan      JapanConfig       `mapstructure:"japan"`
	Korea      KoreaConfig       `mapstructure:"korea"`
	NewZealand NewZealandConfig  `mapstructure:"new_zealand"`
	Postgres   PostgresConfig    `mapstructure:"postgres"`
	MinIO      MinIOConfig       `mapstructure:"minio"`
	Kafka      KafkaConfig       `mapstructure:"kafka"`
	Redis      RedisConfig       `mapstructure:"redis"`
	Metrics    MetricsConfig     `mapstructure:"metrics"`
	Watch      WatchConfig       `mapstructure:"watch"`
}

// HasSink reports whether name is listed in output.sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Output.Sinks {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

func invalid(format string, args ...interface{}) error {
	return errors.New(errors.CodeConfigInvalid, fmt.Sprintf(format, args...))
}

// Validate checks a defaulted Config. Source file paths are checked by the
// workflow that needs them, so a config for one dataset stays valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return invalid("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return invalid("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	for _, s := range c.Output.Sinks {
		switch strings.ToLower(s) {
		case SinkCSV, SinkMinIO, SinkPostgres, SinkKafka:
		default:
			return invalid("output.sinks: unknown sink %q", s)
		}
	}
	if c.HasSink(SinkCSV) && c.Output.Dir == "" {
		return invalid("output.dir is required for the csv sink")
	}

	for i, b := range c.Japan.Batches {
		if len(b.Files) == 0 {
			return invalid("japan.batches[%d] has no files", i)
		}
	}
	if c.Japan.SkipSheets < 0 {
		return invalid("japan.skip_sheets must be >= 0, got %d", c.Japan.SkipSheets)
	}
	if c.Korea.FirstRow < 0 || c.Korea.LastRow < c.Korea.FirstRow {
		return invalid("korea rows [%d, %d) are invalid", c.Korea.FirstRow, c.Korea.LastRow)
	}
	if c.NewZealand.FirstRow < 0 {
		return invalid("new_zealand.first_row must be >= 0, got %d", c.NewZealand.FirstRow)
	}

	if c.HasSink(SinkPostgres) {
		if c.Postgres.Host == "" || c.Postgres.DBName == "" || c.Postgres.User == "" {
			return invalid("postgres.host, postgres.user and postgres.db_name are required for the postgres sink")
		}
		if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
			return invalid("postgres.port %d is out of range [1, 65535]", c.Postgres.Port)
		}
	}
	if c.HasSink(SinkMinIO) {
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return invalid("minio.endpoint and minio.bucket are required for the minio sink")
		}
	}
	if c.HasSink(SinkKafka) {
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return invalid("kafka.brokers and kafka.topic are required for the kafka sink")
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return invalid("redis.addr is required when redis.enabled is set")
	}
	return nil
}
