package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultOutputDir = "output"

	DefaultJapanSkipSheets = 1

	DefaultKoreaFirstRow = 16
	DefaultKoreaLastRow  = 1208

	DefaultNewZealandFirstRow = 1
	DefaultMixtureMarker      = "%"

	DefaultPostgresHost     = "localhost"
	DefaultPostgresPort     = 5432
	DefaultPostgresDBName   = "ghscrunch"
	DefaultPostgresSSLMode  = "disable"
	DefaultPostgresMaxConns = 4

	DefaultMinIOBucket = "ghscrunch"

	DefaultKafkaTopic        = "ghscrunch.rows"
	DefaultKafkaBatchSize    = 100
	DefaultKafkaBatchTimeout = 50 * time.Millisecond
	DefaultKafkaWriteTimeout = 10 * time.Second

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "ghscrunch:"
	DefaultRedisLockTTL   = 10 * time.Minute
	DefaultRedisTimeout   = 3 * time.Second

	DefaultMetricsJob = "ghscrunch"

	DefaultWatchDebounce = 2 * time.Second
)

// DefaultJapanBatches is the published order of the Japanese classification
// workbooks: the 2006 mass classification, then the 2007 and 2008 review and
// new-substance releases.
func DefaultJapanBatches() []BatchConfig {
	files2006 := []string{
		"GHS-jp/classification_result_e(ID001-100).xlsx",
		"GHS-jp/classification_result_e(ID101-200).xlsx",
		"GHS-jp/classification_result_e(ID201-300).xlsx",
		"GHS-jp/classification_result_e(ID301-400).xlsx",
		"GHS-jp/classification_result_e(ID401-500).xlsx",
		"GHS-jp/classification_result_e(ID501-600).xlsx",
		"GHS-jp/classification_result_e(ID601-700).xlsx",
		"GHS-jp/classification_result_e(ID701-800).xlsx",
		"GHS-jp/classification_result_e(ID801-900).xlsx",
		"GHS-jp/classification_result_e(ID901-1000).xlsx",
		"GHS-jp/classification_result_e(ID1001-1100).xlsx",
		"GHS-jp/classification_result_e(ID1101-1200).xlsx",
		"GHS-jp/classification_result_e(ID1201-1300).xlsx",
		"GHS-jp/classification_result_e(ID1301-1400).xlsx",
		"GHS-jp/classification_result_e(ID1401-1424).xlsx",
	}
	return []BatchConfig{
		{Revision: "2006", Files: files2006},
		{Revision: "2007", Files: []string{"GHS-jp/METI_H19_GHS_review_e.xlsx", "GHS-jp/METI_H19_GHS_new_e.xlsx"}},
		{Revision: "2008", Files: []string{"GHS-jp/METI_H20_GHS_review_e.xlsx", "GHS-jp/METI_H20_GHS_new_e.xlsx"}},
	}
}

// ApplyDefaults fills zero-value fields in cfg. Explicit settings win.
// It must run after unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	applyDefaults(cfg, func(string) bool { return false })
}

// applyDefaults is ApplyDefaults for settings where zero is a meaningful
// value: a key that isSet reports as explicitly configured keeps its zero.
func applyDefaults(cfg *Config, isSet func(key string) bool) {
	if cfg == nil {
		return
	}

	// ── Log ──────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Output ───────────────────────────────────────────────────────────────
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if len(cfg.Output.Sinks) == 0 {
		cfg.Output.Sinks = []string{SinkCSV}
	}

	// ── Sources ──────────────────────────────────────────────────────────────
	if len(cfg.Japan.Batches) == 0 {
		cfg.Japan.Batches = DefaultJapanBatches()
	}
	if cfg.Japan.SkipSheets == 0 && !isSet("japan.skip_sheets") {
		cfg.Japan.SkipSheets = DefaultJapanSkipSheets
	}
	if cfg.Korea.File == "" {
		cfg.Korea.File = "GHS-kr/GHS-kr-2011-04-15.xlsx"
	}
	if cfg.Korea.FirstRow == 0 && cfg.Korea.LastRow == 0 && !isSet("korea.first_row") && !isSet("korea.last_row") {
		cfg.Korea.FirstRow = DefaultKoreaFirstRow
		cfg.Korea.LastRow = DefaultKoreaLastRow
	}
	if cfg.NewZealand.File == "" {
		cfg.NewZealand.File = "GHS-nz/CCID Key Studies (4 June 2013).xlsx"
	}
	if cfg.NewZealand.FirstRow == 0 && !isSet("new_zealand.first_row") {
		cfg.NewZealand.FirstRow = DefaultNewZealandFirstRow
	}
	if cfg.NewZealand.MixtureMarker == "" {
		cfg.NewZealand.MixtureMarker = DefaultMixtureMarker
	}

	// ── Postgres ─────────────────────────────────────────────────────────────
	if cfg.Postgres.Host == "" {
		cfg.Postgres.Host = DefaultPostgresHost
	}
	if cfg.Postgres.Port == 0 {
		cfg.Postgres.Port = DefaultPostgresPort
	}
	if cfg.Postgres.DBName == "" {
		cfg.Postgres.DBName = DefaultPostgresDBName
	}
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = DefaultPostgresSSLMode
	}
	if cfg.Postgres.MaxConns == 0 {
		cfg.Postgres.MaxConns = DefaultPostgresMaxConns
	}

	// ── MinIO ────────────────────────────────────────────────────────────────
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Kafka ────────────────────────────────────────────────────────────────
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = DefaultKafkaBatchSize
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.LockTTL == 0 {
		cfg.Redis.LockTTL = DefaultRedisLockTTL
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}

	// ── Metrics / Watch ──────────────────────────────────────────────────────
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = DefaultMetricsJob
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
