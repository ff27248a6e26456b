// Package local writes output tables as CSV files under a directory tree.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// Sink writes each table to <dir>/<dataset>/<name>.csv. A file is written
// to a temporary name and renamed, so a failed run never leaves a truncated
// table behind.
type Sink struct {
	dir    string
	logger logging.Logger
}

// NewSink returns a Sink rooted at dir. The directory is created on first
// write.
func NewSink(dir string, log logging.Logger) *Sink {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Sink{dir: dir, logger: log.Named("csv")}
}

// Path returns the file t is written to.
func (s *Sink) Path(t *table.Table) string {
	return filepath.Join(s.dir, t.Dataset, t.Name+".csv")
}

func (s *Sink) Name() string { return "csv" }

func (s *Sink) Write(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := s.Path(t)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to create output directory")
	}

	f, err := os.CreateTemp(filepath.Dir(target), "."+t.Name+".*.tmp")
	if err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to create file").WithDetailf("path=%s", target)
	}
	tmp := f.Name()
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to write table").WithDetailf("path=%s", target)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to close file").WithDetailf("path=%s", target)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to move file into place").WithDetailf("path=%s", target)
	}

	s.logger.Debug("table written", logging.String("path", target), logging.Int("rows", t.Len()))
	return nil
}

func (s *Sink) Close() error { return nil }
