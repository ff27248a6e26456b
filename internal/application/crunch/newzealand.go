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

// NewZealandLayout gives the column of each field in the HSNO CCID export.
type NewZealandLayout struct {
	Identifier int
	Name       int
	Text       int
	Code       int
}

// DefaultNewZealandLayout is the layout of the CCID key studies export.
func DefaultNewZealandLayout() NewZealandLayout {
	return NewZealandLayout{Identifier: 0, Name: 1, Text: 3, Code: 4}
}

// NewZealandSource locates the HSNO export.
type NewZealandSource struct {
	File          string
	Sheet         int
	FirstRow      int
	Encoding      string
	MixtureMarker string
}

// Table names of the redundancy workflow.
const (
	TableRetained = "retained"
	TableOmitted  = "omitted"
	TableSublists = "sublists"
)

// RedundancyHeader is the header of the retained and omitted tables.
var RedundancyHeader = []string{"Identifier", "Name", "Source code", "Source classification text", "Translated classification"}

// SublistHeader is the header of the summary table.
var SublistHeader = []string{"Source code", "Source classification", "Translated classification"}

// NoIDPrefix scopes the fallback key of a row without a registry number to
// its substance name.
const NoIDPrefix = "no_id:"

type sublist struct {
	combined   string
	text       string
	translated string
}

// NewZealandWorkflow translates HSNO codes to GHS and separates redundant
// name variants from the principal substance.
type NewZealandWorkflow struct {
	reader SourceReader
	tables *reference.Tables
	layout NewZealandLayout
	log    logging.Logger
}

// NewNewZealandWorkflow builds the redundancy workflow.
func NewNewZealandWorkflow(reader SourceReader, tables *reference.Tables, layout NewZealandLayout, log logging.Logger) *NewZealandWorkflow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &NewZealandWorkflow{reader: reader, tables: tables, layout: layout, log: log.Named("nz")}
}

// normalizeCode puts exactly one space before a parenthesised qualifier:
// "6.1A(oral)" becomes "6.1A (oral)".
func normalizeCode(c string) string {
	c = strings.TrimSpace(c)
	if i := strings.Index(c, "("); i >= 0 {
		return strings.TrimSpace(c[:i]) + " " + strings.TrimSpace(c[i:])
	}
	return c
}

// normalizeText puts exactly one space after the first colon.
func normalizeText(t string) string {
	t = strings.TrimSpace(t)
	if i := strings.Index(t, ":"); i >= 0 {
		return strings.TrimSpace(t[:i]) + ": " + strings.TrimSpace(t[i+1:])
	}
	return t
}

// Run collects every (key, name, code) triple, then filters each key's name
// variants. Rows without a code are skipped with a diagnostic; codes absent
// from the translation table get an empty translation and a diagnostic.
func (w *NewZealandWorkflow) Run(ctx context.Context, src NewZealandSource) (*Result, error) {
	wb, err := w.reader.Read(ctx, src.File, tabular.Options{Encoding: src.Encoding})
	if err != nil {
		return nil, err
	}
	if src.Sheet < 0 || src.Sheet >= len(wb.Sheets) {
		return nil, errors.New(errors.CodeSheetNotFound, "sheet not found").
			WithDetailf("path=%s sheet=%d", src.File, src.Sheet)
	}
	sheet := &wb.Sheets[src.Sheet]
	res := &Result{Dataset: NewZealand, Stats: Stats{Sources: 1, Pages: 1}}
	norm := ghs.NewNormalizer()
	variants := ghs.NewVariantSet()
	sublists := make(map[string]sublist)
	l := w.layout

	for r := src.FirstRow; r < sheet.NRows(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		location := "row " + strconv.Itoa(r)
		res.Stats.Rows++

		code := normalizeCode(sheet.Cell(r, l.Code))
		if code == "" {
			res.diagnose(src.File, location, errors.New(errors.CodeMalformedPage, "classification code is blank"))
			res.Stats.Skipped++
			continue
		}
		name := strings.TrimSpace(sheet.Cell(r, l.Name))

		if _, seen := sublists[code]; !seen {
			text := normalizeText(sheet.Cell(r, l.Text))
			tr, known := w.tables.Translate(code)
			if !known {
				d := res.diagnose(src.File, location, errors.New(errors.CodeNoTranslation, "no translation for code").
					WithDetailf("code=%q", code))
				w.log.Warn("no translation", logging.String("code", code), logging.String("location", d.Location))
			}
			sublists[code] = sublist{combined: code + " - " + text, text: text, translated: tr.String()}
		}

		fallback := ""
		if name != "" {
			fallback = NoIDPrefix + name
		}
		for _, k := range norm.Keys(sheet.Cell(r, l.Identifier), fallback) {
			variants.Add(k, name, code)
		}
	}

	filter := ghs.RedundancyFilter{Marker: src.MixtureMarker}
	retained := table.New(string(NewZealand), TableRetained, RedundancyHeader...)
	omitted := table.New(string(NewZealand), TableOmitted, RedundancyHeader...)
	emit := func(t *table.Table, v ghs.Variant) {
		for _, c := range v.Codes {
			s := sublists[c]
			t.Append(v.ID, v.Name, c, s.text, s.translated)
		}
	}
	for _, g := range variants.Groups() {
		fr := filter.Filter(g)
		for _, v := range fr.Retained {
			emit(retained, v)
		}
		for _, v := range fr.Omitted {
			emit(omitted, v)
		}
		res.Stats.Retained += len(fr.Retained)
		res.Stats.Omitted += len(fr.Omitted)
	}

	summary := table.New(string(NewZealand), TableSublists, SublistHeader...)
	codes := make([]string, 0, len(sublists))
	for c := range sublists {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	for _, c := range codes {
		summary.Append(c, sublists[c].combined, sublists[c].translated)
	}

	res.Stats.Substances = variants.Len()
	res.Stats.Sublists = len(codes)
	res.Tables = []*table.Table{retained, omitted, summary}
	w.log.Info("variants filtered",
		logging.Int("substances", variants.Len()),
		logging.Int("retained", res.Stats.Retained),
		logging.Int("omitted", res.Stats.Omitted),
	)
	return res, nil
}
