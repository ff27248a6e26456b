package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

const namespace = "ghscrunch"

// RunMetrics implements crunch.Recorder.
type RunMetrics struct {
	collector MetricsCollector
	gateway   string
	job       string
	logger    logging.Logger

	MergeOutcomes    CounterVec
	RowsWritten      CounterVec
	Diagnostics      CounterVec
	VariantsRetained GaugeVec
	VariantsOmitted  GaugeVec
	RunDuration      HistogramVec
	LastRunSuccess   GaugeVec
}

// NewRunMetrics registers the run metrics on a fresh collector. Push is a
// no-op when cfg.PushGateway is empty.
func NewRunMetrics(cfg config.MetricsConfig, logger logging.Logger) (*RunMetrics, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	collector, err := NewMetricsCollector(CollectorConfig{Namespace: namespace}, logger)
	if err != nil {
		return nil, err
	}
	m := newRunMetrics(collector)
	m.gateway = cfg.PushGateway
	m.job = cfg.Job
	if m.job == "" {
		m.job = config.DefaultMetricsJob
	}
	m.logger = logger.Named("metrics")
	return m, nil
}

func newRunMetrics(c MetricsCollector) *RunMetrics {
	return &RunMetrics{
		collector: c,
		logger:    logging.NewNopLogger(),

		MergeOutcomes: c.RegisterCounter("merge_outcomes_total",
			"Revision merge apply outcomes", "dataset", "outcome"),
		RowsWritten: c.RegisterCounter("table_rows_total",
			"Rows produced per output table", "dataset", "table"),
		Diagnostics: c.RegisterCounter("diagnostics_total",
			"Non-fatal conditions raised while reading sources", "dataset", "code"),
		VariantsRetained: c.RegisterGauge("variants_retained",
			"Classification variants kept by the redundancy filter", "dataset"),
		VariantsOmitted: c.RegisterGauge("variants_omitted",
			"Classification variants dropped as redundant", "dataset"),
		RunDuration: c.RegisterHistogram("dataset_duration_seconds",
			"Wall time of one dataset workflow including writes", nil, "dataset", "success"),
		LastRunSuccess: c.RegisterGauge("dataset_last_success",
			"1 if the last run of the dataset succeeded", "dataset"),
	}
}

// Collector exposes the underlying collector, for serving over HTTP.
func (m *RunMetrics) Collector() MetricsCollector {
	return m.collector
}

func (m *RunMetrics) RecordMerge(dataset string, t ghs.Tally) {
	m.MergeOutcomes.WithLabelValues(dataset, ghs.OutcomeCreated.String()).Add(float64(t.Created))
	m.MergeOutcomes.WithLabelValues(dataset, ghs.OutcomeReplaced.String()).Add(float64(t.Replaced))
	m.MergeOutcomes.WithLabelValues(dataset, ghs.OutcomeKept.String()).Add(float64(t.Kept))
}

func (m *RunMetrics) RecordRows(dataset, tableName string, n int) {
	m.RowsWritten.WithLabelValues(dataset, tableName).Add(float64(n))
}

func (m *RunMetrics) RecordDiagnostic(dataset string, code errors.ErrorCode) {
	m.Diagnostics.WithLabelValues(dataset, string(code)).Inc()
}

func (m *RunMetrics) RecordVariants(dataset string, retained, omitted int) {
	m.VariantsRetained.WithLabelValues(dataset).Set(float64(retained))
	m.VariantsOmitted.WithLabelValues(dataset).Set(float64(omitted))
}

func (m *RunMetrics) RecordDuration(dataset string, d time.Duration, ok bool) {
	m.RunDuration.WithLabelValues(dataset, strconv.FormatBool(ok)).Observe(d.Seconds())
	success := 0.0
	if ok {
		success = 1
	}
	m.LastRunSuccess.WithLabelValues(dataset).Set(success)
}

// Push sends the registry to the configured Pushgateway, replacing the
// previous push for the same job.
func (m *RunMetrics) Push(ctx context.Context) error {
	if m.gateway == "" {
		return nil
	}
	if err := push.New(m.gateway, m.job).Gatherer(m.collector.Gatherer()).PushContext(ctx); err != nil {
		return errors.Wrap(err, errors.CodeMetricsPush, "failed to push metrics").
			WithDetailf("gateway=%s job=%s", m.gateway, m.job)
	}
	m.logger.Debug("metrics pushed", logging.String("gateway", m.gateway))
	return nil
}
