package cli

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/database/postgres"
	redislock "github.com/turtacn/ghscrunch/internal/infrastructure/database/redis"
	"github.com/turtacn/ghscrunch/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ghscrunch/internal/infrastructure/storage/local"
	"github.com/turtacn/ghscrunch/internal/infrastructure/storage/minio"
	"github.com/turtacn/ghscrunch/internal/infrastructure/tabular"
	"github.com/turtacn/ghscrunch/pkg/reference"
)

// sourcesFromConfig maps the source sections of cfg onto workflow inputs.
// Batch order is preserved.
func sourcesFromConfig(cfg *config.Config) crunch.Sources {
	batches := make([]crunch.Batch, 0, len(cfg.Japan.Batches))
	for _, b := range cfg.Japan.Batches {
		batches = append(batches, crunch.Batch{Revision: b.Revision, Files: append([]string(nil), b.Files...)})
	}
	return crunch.Sources{
		JapanBatches:    batches,
		JapanSkipSheets: cfg.Japan.SkipSheets,
		Korea: crunch.KoreaSource{
			File:           cfg.Korea.File,
			Sheet:          cfg.Korea.Sheet,
			FirstRow:       cfg.Korea.FirstRow,
			LastRow:        cfg.Korea.LastRow,
			Encoding:       cfg.Korea.Encoding,
			KeepUnresolved: cfg.Korea.KeepUnresolved,
		},
		NewZealand: crunch.NewZealandSource{
			File:          cfg.NewZealand.File,
			Sheet:         cfg.NewZealand.Sheet,
			FirstRow:      cfg.NewZealand.FirstRow,
			Encoding:      cfg.NewZealand.Encoding,
			MixtureMarker: cfg.NewZealand.MixtureMarker,
		},
	}
}

// sourceFiles lists the files a dataset reads.
func sourceFiles(cfg *config.Config, d crunch.Dataset) []string {
	switch d {
	case crunch.Japan:
		var files []string
		for _, b := range cfg.Japan.Batches {
			files = append(files, b.Files...)
		}
		return files
	case crunch.Korea:
		return nonEmpty(cfg.Korea.File)
	case crunch.NewZealand:
		return nonEmpty(cfg.NewZealand.File)
	}
	return nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// parseDatasets validates positional dataset arguments. No arguments means
// every dataset in canonical order.
func parseDatasets(args []string) ([]crunch.Dataset, error) {
	if len(args) == 0 {
		return crunch.Datasets(), nil
	}
	out := make([]crunch.Dataset, 0, len(args))
	for _, a := range args {
		d, err := crunch.ParseDataset(strings.ToLower(a))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Runtime
// ─────────────────────────────────────────────────────────────────────────────

// runtime owns the service and every connection opened for it.
type runtime struct {
	service *crunch.Service
	metrics *prometheus.RunMetrics
	redis   *redislock.Client
	log     logging.Logger
}

// Sink constructors, replaced in tests.
var (
	newMinIOSink = func(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (crunch.Sink, error) {
		return minio.NewSink(ctx, cfg, log)
	}
	newPostgresSink = func(ctx context.Context, cfg config.PostgresConfig, log logging.Logger) (crunch.Sink, error) {
		conn, err := postgres.NewConnection(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := conn.Migrate(); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return postgres.NewSink(conn, log), nil
	}
	newKafkaSink = func(cfg config.KafkaConfig, runID string, log logging.Logger) (crunch.Sink, error) {
		return kafka.NewProducer(cfg, runID, log)
	}
)

// openSinks builds the sinks named in output.sinks, in the order listed.
// Sinks already opened are closed when a later one fails.
func openSinks(ctx context.Context, cfg *config.Config, runID string, log logging.Logger) ([]crunch.Sink, error) {
	var sinks []crunch.Sink
	fail := func(err error) ([]crunch.Sink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, err
	}
	for _, name := range cfg.Output.Sinks {
		var (
			sink crunch.Sink
			err  error
		)
		switch strings.ToLower(name) {
		case config.SinkCSV:
			sink = local.NewSink(cfg.Output.Dir, log)
		case config.SinkMinIO:
			sink, err = newMinIOSink(ctx, cfg.MinIO, log)
		case config.SinkPostgres:
			sink, err = newPostgresSink(ctx, cfg.Postgres, log)
		case config.SinkKafka:
			sink, err = newKafkaSink(cfg.Kafka, runID, log)
		}
		if err != nil {
			return fail(err)
		}
		if sink != nil {
			sinks = append(sinks, sink)
		}
	}
	return sinks, nil
}

// newRuntime wires reader, sinks, lock and metrics. A dry run gets no sinks,
// no lock and no metrics.
func newRuntime(ctx context.Context, cfg *config.Config, log logging.Logger, dryRun bool) (*runtime, error) {
	reader := tabular.NewFileReader(log)
	sources := sourcesFromConfig(cfg)
	rt := &runtime{log: log}

	if dryRun {
		rt.service = crunch.NewService(reader, reference.Default(), sources, nil, log)
		return rt, nil
	}

	runID := uuid.New().String()
	opts := []crunch.Option{crunch.WithRunID(func() string { return runID })}

	metrics, err := prometheus.NewRunMetrics(cfg.Metrics, log)
	if err != nil {
		return nil, err
	}
	rt.metrics = metrics
	opts = append(opts, crunch.WithRecorder(metrics))

	if cfg.Redis.Enabled {
		client, err := redislock.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		rt.redis = client
		lock := redislock.NewRunLock(client, log, redislock.WithLockTTL(cfg.Redis.LockTTL))
		opts = append(opts, crunch.WithLocker(lock, lockName(cfg)))
	}

	sinks, err := openSinks(ctx, cfg, runID, log)
	if err != nil {
		rt.closeRedis()
		return nil, err
	}
	rt.service = crunch.NewService(reader, reference.Default(), sources, sinks, log, opts...)
	return rt, nil
}

// lockName identifies the output destinations a run writes to, so that two
// runs sharing them are serialised.
func lockName(cfg *config.Config) string {
	return "output:" + strings.Join(cfg.Output.Sinks, ",") + ":" + cfg.Output.Dir
}

func (r *runtime) closeRedis() {
	if r.redis == nil {
		return
	}
	if err := r.redis.Close(); err != nil {
		r.log.Warn("failed to close redis client", logging.Err(err))
	}
}

// Close closes the sinks and the redis client.
func (r *runtime) Close() error {
	err := r.service.Close()
	r.closeRedis()
	return err
}
