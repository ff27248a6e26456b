package crunch

import (
	"context"
	"strings"

	"github.com/turtacn/ghscrunch/internal/domain/ghs"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/internal/infrastructure/tabular"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// Cell addresses a zero-based (row, column) position.
type Cell struct {
	Row int
	Col int
}

// SlotRow binds a hazard slot to the page row that carries it.
type SlotRow struct {
	Class ghs.HazardClass
	Row   int
}

// JapanLayout describes one substance page of the Japanese workbooks.
type JapanLayout struct {
	LocalID    Cell
	Identifier Cell
	Name       Cell
	Revision   Cell
	Slots      []SlotRow
	// Sensitization is the row holding both respiratory and skin entries.
	Sensitization int
	// EntryFrom and EntryTo bound the entry columns: classification, symbol,
	// signal word, hazard statement, rationale.
	EntryFrom int
	EntryTo   int
}

// DefaultJapanLayout is the layout of the 2006-2008 METI/MHLW workbooks.
func DefaultJapanLayout() JapanLayout {
	return JapanLayout{
		LocalID:    Cell{1, 0},
		Identifier: Cell{2, 2},
		Name:       Cell{1, 3},
		Revision:   Cell{2, 4},
		Slots: []SlotRow{
			{ghs.Explosive, 5}, {ghs.FlammGas, 6}, {ghs.FlammAer, 7}, {ghs.OxidGas, 8},
			{ghs.GasPress, 9}, {ghs.FlammLiq, 10}, {ghs.FlammSol, 11}, {ghs.SelfReact, 12},
			{ghs.PyroLiq, 13}, {ghs.PyroSol, 14}, {ghs.SelfHeat, 15}, {ghs.WaterFire, 16},
			{ghs.OxidLiq, 17}, {ghs.OxidSol, 18}, {ghs.OrgPerox, 19}, {ghs.CorMetal, 20},
			{ghs.AcuteOral, 24}, {ghs.AcuteDerm, 25}, {ghs.AcuteGas, 26}, {ghs.AcuteVap, 27},
			{ghs.AcuteAir, 28}, {ghs.SkinCor, 29}, {ghs.EyeDmg, 30},
			{ghs.Mutagen, 32}, {ghs.Cancer, 33}, {ghs.ReprTox, 34}, {ghs.SysSingle, 35},
			{ghs.SysRept, 36}, {ghs.AspHaz, 37}, {ghs.AquaticAcute, 41}, {ghs.AquaticChron, 42},
		},
		Sensitization: 31,
		EntryFrom:     3,
		EntryTo:       8,
	}
}

// minRows is the number of rows a page needs to cover every slot row.
func (l JapanLayout) minRows() int {
	last := l.Sensitization
	for _, c := range []Cell{l.LocalID, l.Identifier, l.Name, l.Revision} {
		if c.Row > last {
			last = c.Row
		}
	}
	for _, s := range l.Slots {
		if s.Row > last {
			last = s.Row
		}
	}
	return last + 1
}

// Batch is one revision: its files are applied in order, after every file
// of the preceding batch.
type Batch struct {
	Revision string
	Files    []string
}

// JapanWorkflow merges successive revisions of the Japanese classification
// into one record per substance.
type JapanWorkflow struct {
	reader     SourceReader
	layout     JapanLayout
	skipSheets int
	log        logging.Logger
}

// NewJapanWorkflow builds the merge workflow. skipSheets leading sheets of
// each workbook are treated as index sheets and ignored.
func NewJapanWorkflow(reader SourceReader, layout JapanLayout, skipSheets int, log logging.Logger) *JapanWorkflow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &JapanWorkflow{reader: reader, layout: layout, skipSheets: skipSheets, log: log.Named("jp")}
}

// Run applies batches strictly in the given order. Every file of a batch is
// read before any of it is applied, so a batch with an unreadable source is
// skipped whole with a diagnostic and the store keeps what earlier batches
// committed. Later batches still apply. A malformed page is skipped with a
// diagnostic. The run fails only when no batch could be read.
func (w *JapanWorkflow) Run(ctx context.Context, batches []Batch) (*Result, error) {
	if len(batches) == 0 {
		return nil, errors.New(errors.CodeEmptyBatchList, "no revision batches configured")
	}
	res := &Result{Dataset: Japan}
	store := ghs.NewStore()
	norm := ghs.NewNormalizer()

	var (
		applied  int
		firstErr error
	)
	for _, b := range batches {
		books, failed, err := w.readBatch(ctx, b)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			if firstErr == nil {
				firstErr = err
			}
			w.skipBatch(res, b, failed, err)
			continue
		}
		for i, wb := range books {
			path := b.Files[i]
			res.Stats.Sources++
			for j := w.skipSheets; j < len(wb.Sheets); j++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				sheet := &wb.Sheets[j]
				tally, err := w.applyPage(store, norm, sheet, b.Revision)
				if err != nil {
					if errors.IsFatal(err) {
						return nil, err
					}
					d := res.diagnose(path, "sheet "+sheet.Name, err)
					w.log.Warn("page skipped",
						logging.String("source", d.Source),
						logging.String("location", d.Location),
						logging.String("code", string(d.Code)),
					)
					res.Stats.Skipped++
					continue
				}
				res.Stats.Pages++
				res.Stats.Merge.Merge(tally)
			}
			w.log.Info("source merged",
				logging.String("revision", b.Revision),
				logging.String("path", path),
				logging.Int("substances", store.Len()),
			)
		}
		applied++
	}
	if applied == 0 {
		return nil, errors.Wrap(firstErr, errors.CodeUnknown, "no revision batch could be read")
	}

	res.Stats.Substances = store.Len()
	res.Tables = w.tables(store)
	return res, nil
}

// readBatch reads every file of b. On failure it returns the path that could
// not be read.
func (w *JapanWorkflow) readBatch(ctx context.Context, b Batch) ([]*table.Workbook, string, error) {
	books := make([]*table.Workbook, 0, len(b.Files))
	for _, path := range b.Files {
		wb, err := w.reader.Read(ctx, path, tabular.Options{})
		if err != nil {
			if ctx.Err() != nil {
				return nil, path, err
			}
			code := errors.CodeUnknown
			if errors.GetCode(err) == errors.CodeUnknown {
				code = errors.CodeSourceRead
			}
			return nil, path, errors.Wrap(err, code, "read source").
				WithDetailf("path=%s revision=%s", path, b.Revision)
		}
		books = append(books, wb)
	}
	return books, "", nil
}

func (w *JapanWorkflow) skipBatch(res *Result, b Batch, path string, err error) {
	d := res.diagnose(path, "batch "+b.Revision, err)
	res.Stats.Skipped++
	w.log.Warn("batch skipped",
		logging.String("revision", b.Revision),
		logging.String("source", d.Source),
		logging.String("code", string(d.Code)),
	)
}

// applyPage validates the page shape, then applies all of its entries for
// every identifier on the page, or none of them.
func (w *JapanWorkflow) applyPage(store *ghs.Store, norm *ghs.Normalizer, sheet *table.Sheet, batchRevision string) (ghs.Tally, error) {
	l := w.layout
	if sheet.NRows() < l.minRows() {
		return ghs.Tally{}, errors.New(errors.CodeMalformedPage, "page has too few rows").
			WithDetailf("rows=%d want>=%d", sheet.NRows(), l.minRows())
	}

	localID := strings.TrimSpace(sheet.Cell(l.LocalID.Row, l.LocalID.Col))
	name := strings.TrimSpace(sheet.Cell(l.Name.Row, l.Name.Col))
	revision := strings.TrimSpace(sheet.Cell(l.Revision.Row, l.Revision.Col))
	if revision == "" {
		revision = batchRevision
	}

	entries := make([]ghs.Update, 0, len(l.Slots)+2)
	for _, s := range l.Slots {
		e := ghs.EntryFromFields(sheet.Cells(s.Row, l.EntryFrom, l.EntryTo), revision)
		entries = append(entries, ghs.Update{Class: s.Class, Entry: e})
	}
	resp, skin := splitSensitization(sheet.Cells(l.Sensitization, l.EntryFrom, l.EntryTo))
	entries = append(entries,
		ghs.Update{Class: ghs.RespSens, Entry: ghs.EntryFromFields(resp, revision)},
		ghs.Update{Class: ghs.SkinSens, Entry: ghs.EntryFromFields(skin, revision)},
	)

	keys := norm.Keys(sheet.Cell(l.Identifier.Row, l.Identifier.Col), localID)
	updates := make([]ghs.Update, 0, len(keys)*len(entries))
	for _, k := range keys {
		for _, e := range entries {
			e.Key = k
			updates = append(updates, e)
		}
	}
	for _, e := range entries {
		if _, err := ghs.ParseHazardClass(string(e.Class)); err != nil {
			return ghs.Tally{}, err
		}
	}
	for _, k := range keys {
		store.Register(k, name)
	}
	return store.ApplyAll(updates)
}

// Table names of the merge workflow besides the per-slot tables.
const (
	TableIndex       = "index"
	TableHStatements = "hstatements"
)

// MergeHeader is the header of every per-slot table.
var MergeHeader = []string{"Identifier", "Name", "Classification", "Symbol", "Signal word", "Hazard statement", "Rationale", "Revision marker"}

func (w *JapanWorkflow) tables(store *ghs.Store) []*table.Table {
	records := store.Records()
	classes := ghs.HazardClasses()
	out := make([]*table.Table, 0, len(classes)+2)

	for _, c := range classes {
		t := table.New(string(Japan), string(c), MergeHeader...)
		for _, r := range records {
			e, _ := r.Entry(c)
			t.Append(append([]string{string(r.Key), r.Name}, e.Fields()...)...)
		}
		out = append(out, t)
	}

	index := table.New(string(Japan), TableIndex, "Identifier", "Name")
	for _, r := range records {
		index.Append(string(r.Key), r.Name)
	}
	out = append(out, index)

	seen := make(map[string]struct{})
	hs := table.New(string(Japan), TableHStatements, "Hazard statement")
	for _, r := range records {
		for _, c := range classes {
			e, ok := r.Entry(c)
			if !ok || strings.TrimSpace(e.HazardStatement) == "" {
				continue
			}
			if _, dup := seen[e.HazardStatement]; dup {
				continue
			}
			seen[e.HazardStatement] = struct{}{}
			hs.Append(e.HazardStatement)
		}
	}
	out = append(out, hs)

	w.log.Debug("tables built",
		logging.Int("tables", len(out)),
		logging.Int("hstatements", hs.Len()),
	)
	return out
}
