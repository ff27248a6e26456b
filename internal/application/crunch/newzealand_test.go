package crunch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/testutil"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/reference"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// nzRow is {identifier, name, text, code}.
type nzRow [4]string

func nzSheet(rows ...nzRow) table.Sheet {
	return testutil.SheetOf("CCID", 1, func(s *table.Sheet) {
		testutil.SetCell(s, 0, 0, "CAS")
		for i, r := range rows {
			row := 1 + i
			testutil.SetCell(s, row, 0, r[0])
			testutil.SetCell(s, row, 1, r[1])
			testutil.SetCell(s, row, 3, r[2])
			testutil.SetCell(s, row, 4, r[3])
		}
	})
}

func runNZ(t *testing.T, rows ...nzRow) *crunch.Result {
	t.Helper()
	reader := testutil.NewMemoryReader()
	reader.Put("nz.xlsx", nzSheet(rows...))
	res, err := crunch.NewNewZealandWorkflow(reader, reference.Default(), crunch.DefaultNewZealandLayout(), testutil.NewMockLogger()).
		Run(context.Background(), crunch.NewZealandSource{File: "nz.xlsx", FirstRow: 1})
	require.NoError(t, err)
	return res
}

func TestNewZealandWorkflow_RedundantVariantOmitted(t *testing.T) {
	res := runNZ(t,
		nzRow{"64-17-5", "Ethanol", "Flammable liquid:high hazard", "3.1B"},
		nzRow{"64-17-5", "Ethanol", "Acutely toxic:oral", "6.1E(oral)"},
		nzRow{"64-17-5", "Ethyl alcohol", "Flammable liquid: high hazard", "3.1B"},
		nzRow{"64-17-5", "Ethanol 40%", "Flammable liquid", "3.1C"},
	)

	retained := res.Table(crunch.TableRetained)
	omitted := res.Table(crunch.TableOmitted)
	require.NotNil(t, retained)
	require.NotNil(t, omitted)

	// Sorted names: "Ethanol", "Ethanol 40%", "Ethyl alcohol"; "Ethanol" is
	// the principal, the others are numbered 0 and 1.
	assert.Equal(t, [][]string{
		{"64-17-5", "Ethanol", "3.1B", "Flammable liquid: high hazard", "GHS: Flammable liquids - Category 2"},
		{"64-17-5", "Ethanol", "6.1E (oral)", "Acutely toxic: oral", "GHS: Acute toxicity: Oral - Category 5"},
		{"_v0_64-17-5", "Ethanol 40%", "3.1C", "Flammable liquid", "GHS: Flammable liquids - Category 3"},
	}, retained.Rows)
	assert.Equal(t, [][]string{
		{"_v1_64-17-5", "Ethyl alcohol", "3.1B", "Flammable liquid: high hazard", "GHS: Flammable liquids - Category 2"},
	}, omitted.Rows)

	assert.Equal(t, 2, res.Stats.Retained)
	assert.Equal(t, 1, res.Stats.Omitted)
	assert.Equal(t, 1, res.Stats.Substances)
}

func TestNewZealandWorkflow_PrincipalFallsBackToFirstName(t *testing.T) {
	res := runNZ(t,
		nzRow{"7647-01-0", "Hydrochloric acid 37%", "", "8.2B"},
		nzRow{"7647-01-0", "Hydrochloric acid 10%", "", "8.2C"},
	)

	retained := res.Table(crunch.TableRetained)
	require.Equal(t, 2, retained.Len())
	assert.Equal(t, []string{"7647-01-0", "Hydrochloric acid 10%"}, retained.Rows[0][:2])
	assert.Equal(t, "_v0_7647-01-0", retained.Rows[1][0])
	assert.Equal(t, 0, res.Table(crunch.TableOmitted).Len())
}

func TestNewZealandWorkflow_MissingIdentifiers(t *testing.T) {
	res := runNZ(t,
		nzRow{"", "Kerosene", "", "3.1C"},
		nzRow{"", "Kerosene, deodorised", "", "3.1C"},
		nzRow{"", "", "", "6.3A"},
		nzRow{"", "", "", "6.3A"},
	)

	retained := res.Table(crunch.TableRetained)
	ids := make([]string, 0, retained.Len())
	for _, r := range retained.Rows {
		ids = append(ids, r[0])
	}
	assert.ElementsMatch(t, []string{"no_id:Kerosene", "no_id:Kerosene, deodorised", "no_id_1", "no_id_2"}, ids)
	assert.Equal(t, 4, res.Stats.Substances)
}

func TestNewZealandWorkflow_Sublists(t *testing.T) {
	res := runNZ(t,
		nzRow{"1", "A", "Skin sensitiser:contact", "6.5B (contact)"},
		nzRow{"2", "B", "Ecotoxic:aquatic", "9.1A(fish)"},
		nzRow{"3", "C", "Aquatic", "9.2A"},
		nzRow{"4", "D", "Radioactive", "7.1"},
		nzRow{"5", "E", "Skin sensitiser: contact", "6.5B(contact)"},
	)

	sub := res.Table(crunch.TableSublists)
	require.NotNil(t, sub)
	assert.Equal(t, crunch.SublistHeader, sub.Header)
	assert.Equal(t, [][]string{
		{"6.5B (contact)", "6.5B (contact) - Skin sensitiser: contact", "GHS: Skin sensitization - Category 1"},
		{"7.1", "7.1 - Radioactive", ""},
		{"9.1A (fish)", "9.1A (fish) - Ecotoxic: aquatic", "GHS: Aquatic toxicity (Acute or Chronic) - Category 1"},
		{"9.2A", "9.2A - Aquatic", ""},
	}, sub.Rows)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.CodeNoTranslation, res.Diagnostics[0].Code)
	assert.Equal(t, 4, res.Stats.Sublists)
}

func TestNewZealandWorkflow_BlankCodeSkipped(t *testing.T) {
	res := runNZ(t,
		nzRow{"1", "A", "text", ""},
		nzRow{"1", "A", "Flammable", "3.1B"},
	)
	assert.Equal(t, 1, res.Stats.Skipped)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, errors.CodeMalformedPage, res.Diagnostics[0].Code)
	assert.Equal(t, 1, res.Table(crunch.TableRetained).Len())
}

func TestNewZealandWorkflow_CustomMarker(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("nz.xlsx", nzSheet(
		nzRow{"1", "Alpha (mixture)", "", "3.1B"},
		nzRow{"1", "Beta", "", "3.1B"},
	))
	res, err := crunch.NewNewZealandWorkflow(reader, reference.Default(), crunch.DefaultNewZealandLayout(), nil).
		Run(context.Background(), crunch.NewZealandSource{File: "nz.xlsx", FirstRow: 1, MixtureMarker: "(mixture)"})
	require.NoError(t, err)

	assert.Equal(t, "Beta", res.Table(crunch.TableRetained).Rows[0][1])
	assert.Equal(t, "Alpha (mixture)", res.Table(crunch.TableOmitted).Rows[0][1])
}
