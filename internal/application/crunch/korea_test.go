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

// krRow is {name, identifier, class, category, statement, m-factor}.
type krRow [6]string

func krSheet(rows ...krRow) table.Sheet {
	const header = 2
	return testutil.SheetOf("list", header, func(s *table.Sheet) {
		testutil.SetCell(s, 0, 1, "물질명")
		for i, r := range rows {
			row := header + i
			for j, col := range []int{1, 3, 4, 5, 8, 9} {
				testutil.SetCell(s, row, col, r[j])
			}
		}
	})
}

func krSource(keep bool) crunch.KoreaSource {
	return crunch.KoreaSource{File: "kr.xlsx", FirstRow: 2, LastRow: 100, KeepUnresolved: keep}
}

func newKorea(reader crunch.SourceReader, log *testutil.MockLogger) *crunch.KoreaWorkflow {
	return crunch.NewKoreaWorkflow(reader, reference.Default(), crunch.DefaultKoreaLayout(), log)
}

func TestKoreaWorkflow_ResolvesAndCarriesForward(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("kr.xlsx", krSheet(
		krRow{"Formaldehyde; Methanal; Formalin", "50-00-0", "급성 독성-경구(3.1)", "3.0", "H301", ""},
		krRow{"", "", "피부 과민성(3.4)", "1", "H317", ""},
		krRow{"Zinc oxide", "1314-13-2", "수생환경유해성-급성(4.1)", "1", "H400", "10.0"},
	))

	res, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(false))
	require.NoError(t, err)

	out := res.Table(crunch.TableClassifications)
	require.NotNil(t, out)
	assert.Equal(t, crunch.KoreaHeader, out.Header)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"50-00-0", "Formaldehyde", "Methanal; Formalin",
		"Acute toxicity (oral) - Category 3 [H301 - Toxic if swallowed]", ""}, out.Rows[0])
	assert.Equal(t, []string{"50-00-0", "Formaldehyde", "Methanal; Formalin",
		"Skin sensitization - Category 1 [H317 - May cause an allergic skin reaction]", ""}, out.Rows[1])
	assert.Equal(t, []string{"1314-13-2", "Zinc oxide", "",
		"Hazardous to the aquatic environment (acute) - Category 1 [H400 - Very toxic to aquatic life]", "10"}, out.Rows[2])

	hazards := res.Table(crunch.TableHazards)
	require.NotNil(t, hazards)
	assert.Equal(t, 3, hazards.Len())
	assert.Equal(t, "Acute toxicity (oral) - Category 3 [H301 - Toxic if swallowed]", hazards.Rows[0][0])
	assert.Equal(t, 3, res.Stats.Sublists)
	assert.Empty(t, res.Diagnostics)
}

func TestKoreaWorkflow_NonOverloadedChapter(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("kr.xlsx", krSheet(
		krRow{"Benzene", "71-43-2", "발암성(3.6)", "1A", "H350", ""},
	))

	res, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(false))
	require.NoError(t, err)
	out := res.Table(crunch.TableClassifications)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "Carcinogenicity - Category 1A [H350 - May cause cancer]", out.Rows[0][3])
}

func TestKoreaWorkflow_UnrecognizedVariant(t *testing.T) {
	rows := []krRow{
		{"Phenol", "108-95-2", "급성 독성(3.1)", "3", "H301", ""},
		{"", "", "피부 부식성(3.2)", "1", "H314", ""},
	}

	t.Run("skipped by default", func(t *testing.T) {
		reader := testutil.NewMemoryReader()
		reader.Put("kr.xlsx", krSheet(rows...))
		log := testutil.NewMockLogger()

		res, err := newKorea(reader, log).Run(context.Background(), krSource(false))
		require.NoError(t, err)

		out := res.Table(crunch.TableClassifications)
		require.Equal(t, 1, out.Len())
		assert.Equal(t, "Skin corrosion/irritation - Category 1 [H314 - Causes severe skin burns and eye damage]", out.Rows[0][3])
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, errors.CodeUnrecognizedVariant, res.Diagnostics[0].Code)
		assert.Equal(t, "row 2", res.Diagnostics[0].Location)
		assert.Equal(t, 1, res.Stats.Skipped)
		assert.Len(t, log.MessagesAt("warn"), 1)
	})

	t.Run("kept on request", func(t *testing.T) {
		reader := testutil.NewMemoryReader()
		reader.Put("kr.xlsx", krSheet(rows...))

		res, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(true))
		require.NoError(t, err)

		out := res.Table(crunch.TableClassifications)
		require.Equal(t, 2, out.Len())
		assert.Equal(t, " - Category 3 [H301 - Toxic if swallowed]", out.Rows[0][3])
		assert.Len(t, res.Diagnostics, 1)
	})
}

func TestKoreaWorkflow_MalformedRows(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("kr.xlsx", krSheet(
		krRow{"Acetone", "67-64-1", "인화성 액체", "2", "H225", ""},
		krRow{"", "", "인화성 액체(2.6)", "", "H225", ""},
		krRow{"", "", "인화성 액체(2.6)", "2", "H225", ""},
		krRow{"", "", "인화성 액체(2.6)", "NaN", "H225", ""},
		krRow{"", "", "인화성 액체(2.6)", "1e30", "H225", ""},
	))

	res, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(false))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Table(crunch.TableClassifications).Len())
	assert.Equal(t, 4, res.Stats.Skipped)
	require.Len(t, res.Diagnostics, 4)
	assert.Contains(t, res.Diagnostics[2].Message, `cell="NaN"`)
	for _, d := range res.Diagnostics {
		assert.Equal(t, errors.CodeMalformedPage, d.Code)
	}
}

func TestKoreaWorkflow_FatalLookupMiss(t *testing.T) {
	t.Run("chapter", func(t *testing.T) {
		reader := testutil.NewMemoryReader()
		reader.Put("kr.xlsx", krSheet(krRow{"X", "1-1-1", "기타(9.9)", "1", "H301", ""}))

		_, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(false))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeReferenceLookupMiss))
	})

	t.Run("hazard statement", func(t *testing.T) {
		reader := testutil.NewMemoryReader()
		reader.Put("kr.xlsx", krSheet(krRow{"X", "1-1-1", "발암성(3.6)", "1", "H999", ""}))

		_, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), krSource(false))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeReferenceLookupMiss))
	})
}

func TestKoreaWorkflow_RowWindow(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("kr.xlsx", krSheet(
		krRow{"A", "1-1-1", "발암성(3.6)", "1", "H350", ""},
		krRow{"B", "2-2-2", "발암성(3.6)", "2", "H351", ""},
	))

	src := krSource(false)
	src.LastRow = 3
	res, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), src)
	require.NoError(t, err)
	out := res.Table(crunch.TableClassifications)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "1-1-1", out.Rows[0][0])
	assert.Equal(t, 1, res.Stats.Rows)
}

func TestKoreaWorkflow_SheetNotFound(t *testing.T) {
	reader := testutil.NewMemoryReader()
	reader.Put("kr.xlsx", krSheet())

	src := krSource(false)
	src.Sheet = 3
	_, err := newKorea(reader, testutil.NewMockLogger()).Run(context.Background(), src)
	assert.True(t, errors.IsCode(err, errors.CodeSheetNotFound))
}
