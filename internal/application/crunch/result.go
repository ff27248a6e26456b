package crunch

import (
	"time"

	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// Stats summarises one workflow run.
type Stats struct {
	Sources    int       `json:"sources"`
	Pages      int       `json:"pages"`
	Rows       int       `json:"rows"`
	Skipped    int       `json:"skipped"`
	Substances int       `json:"substances"`
	Merge      ghs.Tally `json:"merge"`
	Retained   int       `json:"retained"`
	Omitted    int       `json:"omitted"`
	Sublists   int       `json:"sublists"`
}

// Result is the output of one workflow.
type Result struct {
	Dataset     Dataset          `json:"dataset"`
	Tables      []*table.Table   `json:"-"`
	Diagnostics []ghs.Diagnostic `json:"diagnostics"`
	Stats       Stats            `json:"stats"`
}

// Table returns the output table with the given name, or nil.
func (r *Result) Table(name string) *table.Table {
	for _, t := range r.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (r *Result) diagnose(source, location string, err error) ghs.Diagnostic {
	d := ghs.NewDiagnostic(string(r.Dataset), source, location, err)
	r.Diagnostics = append(r.Diagnostics, d)
	return d
}

// DatasetReport is the per-dataset section of a Report.
type DatasetReport struct {
	Dataset     Dataset          `json:"dataset"`
	Stats       Stats            `json:"stats"`
	Tables      []string         `json:"tables"`
	Diagnostics []ghs.Diagnostic `json:"diagnostics"`
	Duration    time.Duration    `json:"duration"`
	Error       string           `json:"error,omitempty"`
}

// Report summarises a Service run.
type Report struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	Datasets  []DatasetReport `json:"datasets"`
}
