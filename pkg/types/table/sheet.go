package table

import (
	"math"
	"strconv"
	"strings"
)

// Sheet is one page of a tabular source: rows of positional text cells.
// Numeric cells arrive in their textual form.
type Sheet struct {
	Name string
	Rows [][]string
}

// NRows returns the number of rows.
func (s *Sheet) NRows() int {
	return len(s.Rows)
}

// Row returns row r, or nil when out of range.
func (s *Sheet) Row(r int) []string {
	if r < 0 || r >= len(s.Rows) {
		return nil
	}
	return s.Rows[r]
}

// Cell returns the text at (r, c). Missing cells read as "".
func (s *Sheet) Cell(r, c int) string {
	row := s.Row(r)
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Cells returns columns [from, to) of row r, padded with "" to full width.
func (s *Sheet) Cells(r, from, to int) []string {
	out := make([]string, 0, to-from)
	for c := from; c < to; c++ {
		out = append(out, s.Cell(r, c))
	}
	return out
}

// Workbook is an ordered list of sheets read from one source file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// ParseNumber reads a numeric cell. Spreadsheet exports store integers as
// floats ("1.0"), so the value is parsed as a float.
func ParseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInt reads a numeric cell and truncates it toward zero. NaN, infinities
// and values outside the int32 range are rejected.
func ParseInt(cell string) (int, bool) {
	v, ok := ParseNumber(cell)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
