package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/turtacn/ghscrunch/pkg/errors"
)

// envPrefix is the environment variable prefix of every setting.
const envPrefix = "GHSCRUNCH"

// searchPaths are consulted, in order, when no config file is given.
var searchPaths = []string{".", "$HOME/.ghscrunch", "/etc/ghscrunch"}

// envKeys lists the scalar keys that may be set from the environment alone.
// viper only resolves AutomaticEnv for keys it already knows about.
var envKeys = []string{
	"log.level", "log.format",
	"output.dir", "output.sinks",
	"korea.file", "korea.encoding", "new_zealand.file", "new_zealand.encoding",
	"postgres.host", "postgres.port", "postgres.user", "postgres.password", "postgres.db_name", "postgres.ssl_mode",
	"minio.endpoint", "minio.access_key", "minio.secret_key", "minio.bucket", "minio.use_ssl", "minio.prefix",
	"kafka.brokers", "kafka.topic",
	"redis.enabled", "redis.addr", "redis.password", "redis.db",
	"metrics.push_gateway", "metrics.job",
}

// newViper builds a Viper instance with YAML file type, GHSCRUNCH_ env
// prefix and a "." to "_" key replacer, so "postgres.host" resolves to
// GHSCRUNCH_POSTGRES_HOST.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads the YAML file at configPath, merges GHSCRUNCH_* overrides,
// applies defaults and validates. An empty configPath searches
// ./ghscrunch.yaml, ~/.ghscrunch/ghscrunch.yaml and /etc/ghscrunch/ghscrunch.yaml,
// and falls back to environment and defaults when none exists.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigLoad, "failed to read config file").
				WithDetail(configPath)
		}
		return unmarshalAndFinalize(v, filepath.Dir(configPath))
	}

	v.SetConfigName("ghscrunch")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, errors.CodeConfigLoad, "failed to read config file")
		}
		return unmarshalAndFinalize(v, "")
	}
	return unmarshalAndFinalize(v, filepath.Dir(v.ConfigFileUsed()))
}

// LoadFromEnv builds a Config from GHSCRUNCH_* variables and defaults only.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper(), "")
}

// unmarshalAndFinalize unmarshals viper state, applies defaults, resolves
// relative source paths against baseDir and validates.
func unmarshalAndFinalize(v *viper.Viper, baseDir string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigLoad, "failed to unmarshal configuration")
	}
	// Comma separated lists arrive from the environment as one string.
	cfg.Output.Sinks = splitList(cfg.Output.Sinks)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	applyDefaults(cfg, v.IsSet)
	if baseDir != "" {
		cfg.resolvePaths(baseDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// resolvePaths makes relative source paths relative to the config file.
func (c *Config) resolvePaths(baseDir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	for i := range c.Japan.Batches {
		for j := range c.Japan.Batches[i].Files {
			c.Japan.Batches[i].Files[j] = abs(c.Japan.Batches[i].Files[j])
		}
	}
	c.Korea.File = abs(c.Korea.File)
	c.NewZealand.File = abs(c.NewZealand.File)
	c.Output.Dir = abs(c.Output.Dir)
}
