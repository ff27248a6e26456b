package crunch

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/internal/infrastructure/tabular"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/reference"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// KoreaLayout gives the column of each field in the Korean list.
type KoreaLayout struct {
	Name       int
	Identifier int
	Class      int
	Category   int
	Statement  int
	MFactor    int
}

// DefaultKoreaLayout is the layout of the 2011 Korean GHS list.
func DefaultKoreaLayout() KoreaLayout {
	return KoreaLayout{Name: 1, Identifier: 3, Class: 4, Category: 5, Statement: 8, MFactor: 9}
}

// KoreaSource locates the Korean list.
type KoreaSource struct {
	File     string
	Sheet    int
	FirstRow int
	LastRow  int
	Encoding string
	// KeepUnresolved writes rows whose hazard class could not be resolved,
	// with an empty class, instead of skipping them.
	KeepUnresolved bool
}

// Table names of the disambiguation workflow.
const (
	TableClassifications = "classifications"
	TableHazards         = "hazards"
)

// KoreaHeader is the header of the classifications table.
var KoreaHeader = []string{"Identifier", "Name", "Synonyms", "Hazard sublist", "M-factor"}

// KoreaWorkflow resolves the Korean hazard class column to GHS hazard
// classes and writes one row per identifier and classification.
type KoreaWorkflow struct {
	reader        SourceReader
	tables        *reference.Tables
	disambiguator *ghs.Disambiguator
	layout        KoreaLayout
	log           logging.Logger
}

// NewKoreaWorkflow builds the workflow with the Korean keyword rules.
func NewKoreaWorkflow(reader SourceReader, tables *reference.Tables, layout KoreaLayout, log logging.Logger) *KoreaWorkflow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &KoreaWorkflow{
		reader:        reader,
		tables:        tables,
		disambiguator: ghs.NewDisambiguator(tables, ghs.KoreanRules()),
		layout:        layout,
		log:           log.Named("kr"),
	}
}

// chapterRef extracts the chapter reference from a hazard class cell such as
// "피부 과민성(3.4)".
func chapterRef(field string) (string, bool) {
	i := strings.Index(field, "(")
	if i < 0 {
		return "", false
	}
	ref := strings.Trim(strings.TrimSpace(field[i:]), "()")
	return strings.TrimSpace(ref), ref != ""
}

// splitNames separates the primary name from its synonyms at the first ";".
func splitNames(field string) (name, synonyms string) {
	parts := strings.SplitN(field, ";", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		synonyms = strings.TrimSpace(parts[1])
	}
	return name, synonyms
}

// category renders a category cell. A numeric cell that is not a usable
// integer, such as "NaN" or "1e30", is rejected.
func category(cell string) (string, bool) {
	if n, ok := table.ParseInt(cell); ok {
		return "Category " + strconv.Itoa(n), true
	}
	if _, numeric := table.ParseNumber(cell); numeric {
		return "", false
	}
	if c := strings.TrimSpace(cell); c != "" {
		return "Category " + c, true
	}
	return "", false
}

func mFactor(cell string) string {
	if n, ok := table.ParseInt(cell); ok {
		return strconv.Itoa(n)
	}
	return ""
}

// Run processes rows [FirstRow, LastRow) of the configured sheet. Name and
// identifier cells carry forward from the row above when blank, since the
// list uses merged cells.
//
// A chapter or hazard statement missing from the reference tables aborts
// the run. Unrecognized variants and malformed rows become diagnostics.
func (w *KoreaWorkflow) Run(ctx context.Context, src KoreaSource) (*Result, error) {
	wb, err := w.reader.Read(ctx, src.File, tabular.Options{Encoding: src.Encoding})
	if err != nil {
		return nil, err
	}
	if src.Sheet < 0 || src.Sheet >= len(wb.Sheets) {
		return nil, errors.New(errors.CodeSheetNotFound, "sheet not found").
			WithDetailf("path=%s sheet=%d", src.File, src.Sheet)
	}
	sheet := &wb.Sheets[src.Sheet]
	res := &Result{Dataset: Korea, Stats: Stats{Sources: 1, Pages: 1}}
	norm := ghs.NewNormalizer()
	l := w.layout

	out := table.New(string(Korea), TableClassifications, KoreaHeader...)
	sublists := make(map[string]struct{})
	var name, synonyms, identifier string

	last := src.LastRow
	if last > sheet.NRows() {
		last = sheet.NRows()
	}
	for r := src.FirstRow; r < last; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cell := strings.TrimSpace(sheet.Cell(r, l.Name)); cell != "" {
			name, synonyms = splitNames(cell)
		}
		if cell := strings.TrimSpace(sheet.Cell(r, l.Identifier)); cell != "" {
			identifier = cell
		}
		location := "row " + strconv.Itoa(r)
		res.Stats.Rows++

		classField := sheet.Cell(r, l.Class)
		ref, ok := chapterRef(classField)
		if !ok {
			w.skip(res, src.File, location, errors.New(errors.CodeMalformedPage, "hazard class cell has no chapter reference").
				WithDetailf("cell=%q", classField))
			continue
		}
		resolution, err := w.disambiguator.Resolve(ref, classField)
		if err != nil {
			if errors.IsFatal(err) {
				return nil, errors.Wrap(err, errors.CodeUnknown, "resolve hazard class").WithDetail(location)
			}
			w.diagnose(res, src.File, location, err)
			if !src.KeepUnresolved {
				res.Stats.Skipped++
				continue
			}
		}

		cat, ok := category(sheet.Cell(r, l.Category))
		if !ok {
			w.skip(res, src.File, location, errors.New(errors.CodeMalformedPage, "hazard category is blank or not a category").
				WithDetailf("cell=%q", sheet.Cell(r, l.Category)))
			continue
		}
		code := strings.TrimSpace(sheet.Cell(r, l.Statement))
		text, err := w.tables.Statement(code)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "look up hazard statement").WithDetail(location)
		}

		sublist := resolution.Category + " - " + cat + " [" + code + " - " + text + "]"
		sublists[sublist] = struct{}{}
		m := mFactor(sheet.Cell(r, l.MFactor))
		for _, k := range norm.Keys(identifier, "") {
			out.Append(string(k), name, synonyms, sublist, m)
		}
	}

	summary := table.New(string(Korea), TableHazards, "Hazard sublist")
	sorted := make([]string, 0, len(sublists))
	for s := range sublists {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	for _, s := range sorted {
		summary.Append(s)
	}

	res.Stats.Sublists = len(sorted)
	res.Tables = []*table.Table{out, summary}
	w.log.Info("hazard sublists enumerated",
		logging.Int("sublists", len(sorted)),
		logging.Int("rows", out.Len()),
	)
	return res, nil
}

func (w *KoreaWorkflow) diagnose(res *Result, source, location string, err error) {
	d := res.diagnose(source, location, err)
	w.log.Warn("diagnostic",
		logging.String("location", d.Location),
		logging.String("code", string(d.Code)),
		logging.String("message", d.Message),
	)
}

func (w *KoreaWorkflow) skip(res *Result, source, location string, err error) {
	w.diagnose(res, source, location, err)
	res.Stats.Skipped++
}
