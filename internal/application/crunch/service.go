package crunch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/reference"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// Sources is everything the workflows read.
type Sources struct {
	JapanBatches    []Batch
	JapanSkipSheets int
	Korea           KoreaSource
	NewZealand      NewZealandSource
}

// Option customises a Service.
type Option func(*Service)

// WithLocker makes Run hold the named lock for its whole duration.
func WithLocker(l Locker, name string) Option {
	return func(s *Service) {
		s.locker = l
		s.lockName = name
	}
}

// WithRecorder sends run metrics to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRunID replaces the random run identifier generator.
func WithRunID(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// Service runs the workflows and fans their tables out to every sink.
type Service struct {
	reader   SourceReader
	tables   *reference.Tables
	sources  Sources
	sinks    []Sink
	locker   Locker
	lockName string
	recorder Recorder
	log      logging.Logger
	now      func() time.Time
	newID    func() string
}

// NewService builds a Service. tables defaults to reference.Default().
func NewService(reader SourceReader, tables *reference.Tables, sources Sources, sinks []Sink, log logging.Logger, opts ...Option) *Service {
	if tables == nil {
		tables = reference.Default()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &Service{
		reader:  reader,
		tables:  tables,
		sources: sources,
		sinks:   sinks,
		log:     log,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RunDataset runs one workflow without writing its tables.
func (s *Service) RunDataset(ctx context.Context, d Dataset) (*Result, error) {
	switch d {
	case Japan:
		return NewJapanWorkflow(s.reader, DefaultJapanLayout(), s.sources.JapanSkipSheets, s.log).
			Run(ctx, s.sources.JapanBatches)
	case Korea:
		return NewKoreaWorkflow(s.reader, s.tables, DefaultKoreaLayout(), s.log).
			Run(ctx, s.sources.Korea)
	case NewZealand:
		return NewNewZealandWorkflow(s.reader, s.tables, DefaultNewZealandLayout(), s.log).
			Run(ctx, s.sources.NewZealand)
	default:
		return nil, errors.InvalidParam("unknown dataset").WithDetailf("dataset=%q", d)
	}
}

// Run processes datasets in the given order. A failed dataset is recorded in
// its report section and the remaining datasets still run; cancellation stops
// the loop. The first failure is returned.
func (s *Service) Run(ctx context.Context, datasets []Dataset) (*Report, error) {
	report := &Report{RunID: s.newID(), StartedAt: s.now()}
	log := s.log.With(logging.String("run_id", report.RunID))

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, s.lockName)
		if err != nil {
			return report, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("failed to release run lock", logging.String("lock", s.lockName), logging.Err(err))
			}
		}()
	}

	var runErr error
	for _, d := range datasets {
		log.Info("Processing " + d.Title() + ".")
		dr, err := s.runOne(ctx, d)
		report.Datasets = append(report.Datasets, dr)
		if err != nil {
			log.Error("dataset failed", logging.String("dataset", string(d)), logging.Err(err))
			if runErr == nil {
				runErr = err
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		log.Info("dataset done",
			logging.String("dataset", string(d)),
			logging.Int("tables", len(dr.Tables)),
			logging.Int("diagnostics", len(dr.Diagnostics)),
			logging.Duration("elapsed", dr.Duration),
		)
	}

	if s.recorder != nil {
		if err := s.recorder.Push(ctx); err != nil {
			log.Warn("metrics push failed", logging.Err(err))
		}
	}
	return report, runErr
}

func (s *Service) runOne(ctx context.Context, d Dataset) (DatasetReport, error) {
	start := s.now()
	dr := DatasetReport{Dataset: d}

	res, err := s.RunDataset(ctx, d)
	if err == nil {
		dr.Stats = res.Stats
		dr.Diagnostics = res.Diagnostics
		err = s.write(ctx, res.Tables)
		for _, t := range res.Tables {
			dr.Tables = append(dr.Tables, t.Key())
		}
	}
	dr.Duration = s.now().Sub(start)
	if err != nil {
		dr.Error = err.Error()
	}

	if s.recorder != nil {
		if res != nil {
			s.record(res)
		}
		s.recorder.RecordDuration(string(d), dr.Duration, err == nil)
	}
	return dr, err
}

func (s *Service) write(ctx context.Context, tables []*table.Table) error {
	for _, sink := range s.sinks {
		for _, t := range tables {
			if err := sink.Write(ctx, t); err != nil {
				return errors.Wrap(err, errors.CodeSinkWrite, "write table").
					WithDetailf("sink=%s table=%s", sink.Name(), t.Key())
			}
		}
		s.log.Debug("tables written", logging.String("sink", sink.Name()), logging.Int("tables", len(tables)))
	}
	return nil
}

func (s *Service) record(res *Result) {
	ds := string(res.Dataset)
	for _, t := range res.Tables {
		s.recorder.RecordRows(ds, t.Name, t.Len())
	}
	for _, d := range res.Diagnostics {
		s.recorder.RecordDiagnostic(ds, d.Code)
	}
	switch res.Dataset {
	case Japan:
		s.recorder.RecordMerge(ds, res.Stats.Merge)
	case NewZealand:
		s.recorder.RecordVariants(ds, res.Stats.Retained, res.Stats.Omitted)
	}
}

// Close closes every sink and returns the first error.
func (s *Service) Close() error {
	var first error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = errors.Wrap(err, errors.CodeSinkWrite, "close sink").WithDetailf("sink=%s", sink.Name())
		}
	}
	return first
}
