package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/internal/testutil"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

func TestParseDatasets(t *testing.T) {
	ds, err := parseDatasets(nil)
	require.NoError(t, err)
	assert.Equal(t, crunch.Datasets(), ds)

	ds, err = parseDatasets([]string{"NZ", "jp"})
	require.NoError(t, err)
	assert.Equal(t, []crunch.Dataset{crunch.NewZealand, crunch.Japan}, ds)

	_, err = parseDatasets([]string{"jp", "xx"})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestSourcesFromConfig_KeepsBatchOrder(t *testing.T) {
	cfg := &config.Config{
		Japan: config.JapanConfig{
			Batches: []config.BatchConfig{
				{Revision: "2006", Files: []string{"a.xlsx", "b.xlsx"}},
				{Revision: "2008", Files: []string{"c.xlsx"}},
			},
			SkipSheets: 2,
		},
		Korea:      config.KoreaConfig{File: "kr.xlsx", FirstRow: 16, LastRow: 20, KeepUnresolved: true},
		NewZealand: config.NewZealandConfig{File: "nz.csv", MixtureMarker: "%"},
	}

	src := sourcesFromConfig(cfg)
	require.Len(t, src.JapanBatches, 2)
	assert.Equal(t, "2006", src.JapanBatches[0].Revision)
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, src.JapanBatches[0].Files)
	assert.Equal(t, 2, src.JapanSkipSheets)
	assert.True(t, src.Korea.KeepUnresolved)
	assert.Equal(t, 20, src.Korea.LastRow)
	assert.Equal(t, "%", src.NewZealand.MixtureMarker)

	assert.Equal(t, []string{"a.xlsx", "b.xlsx", "c.xlsx"}, sourceFiles(cfg, crunch.Japan))
	assert.Equal(t, []string{"kr.xlsx"}, sourceFiles(cfg, crunch.Korea))
	assert.Nil(t, sourceFiles(&config.Config{}, crunch.NewZealand))
}

func TestOpenSinks_ClosesOpenedOnFailure(t *testing.T) {
	opened := testutil.NewMemorySink("minio")
	prevMinIO, prevKafka := newMinIOSink, newKafkaSink
	defer func() { newMinIOSink, newKafkaSink = prevMinIO, prevKafka }()

	newMinIOSink = func(context.Context, config.MinIOConfig, logging.Logger) (crunch.Sink, error) {
		return opened, nil
	}
	newKafkaSink = func(config.KafkaConfig, string, logging.Logger) (crunch.Sink, error) {
		return nil, errors.New(errors.CodeSinkConnect, "no brokers reachable")
	}

	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), Sinks: []string{"csv", "minio", "kafka"}}}
	_, err := openSinks(context.Background(), cfg, "run", logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSinkConnect))
	assert.True(t, opened.Closed())
}

func TestOpenSinks_Order(t *testing.T) {
	prev := newMinIOSink
	defer func() { newMinIOSink = prev }()
	newMinIOSink = func(context.Context, config.MinIOConfig, logging.Logger) (crunch.Sink, error) {
		return testutil.NewMemorySink("minio"), nil
	}

	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), Sinks: []string{"MinIO", "csv"}}}
	sinks, err := openSinks(context.Background(), cfg, "run", nil)
	require.NoError(t, err)
	require.Len(t, sinks, 2)
	assert.Equal(t, "minio", sinks[0].Name())
	assert.Equal(t, "csv", sinks[1].Name())
}

func TestLockName(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: "/data/out", Sinks: []string{"csv", "postgres"}}}
	assert.Equal(t, "output:csv,postgres:/data/out", lockName(cfg))
}
