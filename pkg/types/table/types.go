// Package table defines the output value type shared by the crunch workflows
// and every sink: a named table with one header row and N data rows.
package table

import (
	"encoding/csv"
	"io"
)

// Table is one output table. Rows are positional and must have the same
// width as Header.
type Table struct {
	// Dataset is the workflow that produced the table ("jp", "kr", "nz").
	Dataset string `json:"dataset"`
	// Name is unique within a dataset, e.g. "flamm_gas" or "index".
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// New returns an empty table with the given header.
func New(dataset, name string, header ...string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	return &Table{Dataset: dataset, Name: name, Header: h}
}

// Append adds a data row. The row is copied.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(cells))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Key returns "<dataset>/<name>", the identifier sinks use for the table.
func (t *Table) Key() string {
	return t.Dataset + "/" + t.Name
}

// Records returns the header followed by the data rows.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	return append(out, t.Rows...)
}

// WriteCSV encodes the table as RFC 4180 CSV, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}
