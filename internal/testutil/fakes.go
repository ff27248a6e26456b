package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/internal/infrastructure/tabular"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// ─────────────────────────────────────────────────────────────────────────────
// MemoryReader
// ─────────────────────────────────────────────────────────────────────────────

// MemoryReader serves workbooks registered by path.
type MemoryReader struct {
	mu        sync.Mutex
	workbooks map[string]*table.Workbook
	failures  map[string]error
	reads     []string
}

// NewMemoryReader creates an empty reader.
func NewMemoryReader() *MemoryReader {
	return &MemoryReader{
		workbooks: make(map[string]*table.Workbook),
		failures:  make(map[string]error),
	}
}

// Put registers a workbook under path.
func (r *MemoryReader) Put(path string, sheets ...table.Sheet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workbooks[path] = &table.Workbook{Path: path, Sheets: sheets}
}

// Fail makes every read of path return err.
func (r *MemoryReader) Fail(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[path] = err
}

// Read implements crunch.SourceReader.
func (r *MemoryReader) Read(ctx context.Context, path string, _ tabular.Options) (*table.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads = append(r.reads, path)
	if err, ok := r.failures[path]; ok {
		return nil, err
	}
	wb, ok := r.workbooks[path]
	if !ok {
		return nil, errors.New(errors.CodeSourceOpen, "no such source").WithDetailf("path=%s", path)
	}
	return wb, nil
}

// Reads returns the paths read so far, in order.
func (r *MemoryReader) Reads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reads...)
}

// SheetOf builds a sheet of n empty rows and applies set to fill it.
func SheetOf(name string, n int, set func(s *table.Sheet)) table.Sheet {
	s := table.Sheet{Name: name, Rows: make([][]string, n)}
	if set != nil {
		set(&s)
	}
	return s
}

// SetCell writes v at (row, col), growing the row as needed.
func SetCell(s *table.Sheet, row, col int, v string) {
	for len(s.Rows) <= row {
		s.Rows = append(s.Rows, nil)
	}
	for len(s.Rows[row]) <= col {
		s.Rows[row] = append(s.Rows[row], "")
	}
	s.Rows[row][col] = v
}

// ─────────────────────────────────────────────────────────────────────────────
// MemorySink
// ─────────────────────────────────────────────────────────────────────────────

// MemorySink keeps written tables by key.
type MemorySink struct {
	mu     sync.Mutex
	name   string
	tables map[string]*table.Table
	order  []string
	err    error
	closed bool

	// OnWrite, when set, is called after each stored table.
	OnWrite func(key string)
}

// NewMemorySink creates an empty sink.
func NewMemorySink(name string) *MemorySink {
	return &MemorySink{name: name, tables: make(map[string]*table.Table)}
}

// FailWith makes every later Write return err.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *MemorySink) Name() string { return s.name }

func (s *MemorySink) Write(_ context.Context, t *table.Table) error {
	s.mu.Lock()
	if s.err != nil {
		s.mu.Unlock()
		return s.err
	}
	if _, ok := s.tables[t.Key()]; !ok {
		s.order = append(s.order, t.Key())
	}
	s.tables[t.Key()] = t
	hook := s.OnWrite
	s.mu.Unlock()

	if hook != nil {
		hook(t.Key())
	}
	return nil
}

func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Table returns the table written under key ("dataset/name").
func (s *MemorySink) Table(key string) *table.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[key]
}

// Keys returns the written table keys in first-write order.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Closed reports whether Close was called.
func (s *MemorySink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ─────────────────────────────────────────────────────────────────────────────
// Locker and Recorder
// ─────────────────────────────────────────────────────────────────────────────

// MemoryLocker is a process-local crunch.Locker.
type MemoryLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	Acquired []string
	Released []string
}

// NewMemoryLocker creates an unlocked locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]bool)}
}

// Acquire fails with CodeLockHeld instead of blocking.
func (l *MemoryLocker) Acquire(_ context.Context, name string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[name] {
		return nil, errors.New(errors.CodeLockHeld, "lock is held").WithDetailf("lock=%s", name)
	}
	l.held[name] = true
	l.Acquired = append(l.Acquired, name)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, name)
		l.Released = append(l.Released, name)
		return nil
	}, nil
}

// RecordingRecorder is a crunch.Recorder that keeps what it was given.
type RecordingRecorder struct {
	mu          sync.Mutex
	Merges      map[string]ghs.Tally
	Rows        map[string]int
	Diagnostics map[errors.ErrorCode]int
	Retained    int
	Omitted     int
	Outcomes    map[string]bool
	Pushes      int
	PushErr     error
}

// NewRecordingRecorder creates an empty recorder.
func NewRecordingRecorder() *RecordingRecorder {
	return &RecordingRecorder{
		Merges:      make(map[string]ghs.Tally),
		Rows:        make(map[string]int),
		Diagnostics: make(map[errors.ErrorCode]int),
		Outcomes:    make(map[string]bool),
	}
}

func (r *RecordingRecorder) RecordMerge(dataset string, t ghs.Tally) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Merges[dataset] = t
}

func (r *RecordingRecorder) RecordRows(dataset, tableName string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rows[dataset+"/"+tableName] = n
}

func (r *RecordingRecorder) RecordDiagnostic(_ string, code errors.ErrorCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Diagnostics[code]++
}

func (r *RecordingRecorder) RecordVariants(_ string, retained, omitted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Retained += retained
	r.Omitted += omitted
}

func (r *RecordingRecorder) RecordDuration(dataset string, _ time.Duration, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outcomes[dataset] = ok
}

func (r *RecordingRecorder) Push(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pushes++
	return r.PushErr
}
