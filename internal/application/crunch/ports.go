// Package crunch holds the three reconciliation workflows and the Service
// that runs them: Japan (revision merge), Korea (chapter disambiguation) and
// New Zealand (variant redundancy filtering).
package crunch

import (
	"context"
	"time"

	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/internal/infrastructure/tabular"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// SourceReader loads one tabular source. tabular.FileReader implements it.
type SourceReader interface {
	Read(ctx context.Context, path string, opts tabular.Options) (*table.Workbook, error)
}

// Sink persists output tables.
type Sink interface {
	// Name identifies the sink in logs and errors.
	Name() string
	Write(ctx context.Context, t *table.Table) error
	Close() error
}

// Locker serialises runs that share output destinations.
type Locker interface {
	// Acquire blocks until name is held or ctx ends. The returned function
	// releases the lock.
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}

// Recorder receives run metrics.
type Recorder interface {
	RecordMerge(dataset string, t ghs.Tally)
	RecordRows(dataset, tableName string, n int)
	RecordDiagnostic(dataset string, code errors.ErrorCode)
	RecordVariants(dataset string, retained, omitted int)
	RecordDuration(dataset string, d time.Duration, ok bool)
	Push(ctx context.Context) error
}

// Dataset names a national source.
type Dataset string

const (
	Japan      Dataset = "jp"
	Korea      Dataset = "kr"
	NewZealand Dataset = "nz"
)

// Datasets lists every dataset in canonical order.
func Datasets() []Dataset {
	return []Dataset{Japan, Korea, NewZealand}
}

// ParseDataset validates a dataset name.
func ParseDataset(s string) (Dataset, error) {
	for _, d := range Datasets() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", errors.InvalidParam("unknown dataset").WithDetailf("dataset=%q, expected jp|kr|nz", s)
}

// Title is the human name used in progress messages.
func (d Dataset) Title() string {
	switch d {
	case Japan:
		return "Japan GHS classifications"
	case Korea:
		return "Republic of Korea GHS classifications"
	case NewZealand:
		return "Aotearoa New Zealand HSNO classifications"
	default:
		return string(d)
	}
}
