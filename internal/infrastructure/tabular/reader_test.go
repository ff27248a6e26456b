package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"

	"github.com/turtacn/ghscrunch/pkg/errors"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFileReader_XLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Index": {{"ID", "Name"}},
		"1":     {{"ID001", "", "", "Formaldehyde"}, {"", "", "50-00-0"}},
	}, []string{"Index", "1"})

	wb, err := NewFileReader(nil).Read(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "Index", wb.Sheets[0].Name)
	assert.Equal(t, "1", wb.Sheets[1].Name)
	assert.Equal(t, "Formaldehyde", wb.Sheets[1].Cell(0, 3))
	assert.Equal(t, "50-00-0", wb.Sheets[1].Cell(1, 2))
}

func TestFileReader_CSVEucKR(t *testing.T) {
	text, err := korean.EUCKR.NewEncoder().String("이름,피부 과민성(3.4)\n벤젠,급성 독성-경구(3.1)\n")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "kr.csv")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	wb, err := NewFileReader(nil).Read(context.Background(), path, Options{Encoding: "euc-kr"})
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)
	assert.Equal(t, "kr", wb.Sheets[0].Name)
	assert.Equal(t, "피부 과민성(3.4)", wb.Sheets[0].Cell(0, 1))
	assert.Equal(t, "급성 독성-경구(3.1)", wb.Sheets[0].Cell(1, 1))
}

func TestFileReader_TSVShiftJIS(t *testing.T) {
	text, err := japanese.ShiftJIS.NewEncoder().String("物質名\t区分1\n")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "jp.tsv")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	wb, err := NewFileReader(nil).Read(context.Background(), path, Options{Encoding: "shift_jis"})
	require.NoError(t, err)
	assert.Equal(t, "区分1", wb.Sheets[0].Cell(0, 1))
}

func TestFileReader_CSVStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nz.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xef\xbb\xbfCASRN,Name\n"), 0o600))

	wb, err := NewFileReader(nil).Read(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "CASRN", wb.Sheets[0].Cell(0, 0))
}

func TestFileReader_Errors(t *testing.T) {
	r := NewFileReader(nil)
	ctx := context.Background()

	_, err := r.Read(ctx, "legacy.xls", Options{})
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedFormat))

	_, err = r.Read(ctx, "data.json", Options{})
	assert.True(t, errors.IsCode(err, errors.CodeUnsupportedFormat))

	_, err = r.Read(ctx, filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.True(t, errors.IsCode(err, errors.CodeSourceOpen))

	_, err = r.Read(ctx, filepath.Join(t.TempDir(), "missing.csv"), Options{Encoding: "klingon"})
	assert.True(t, errors.IsCode(err, errors.CodeSourceEncoding))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.Read(cancelled, "x.csv", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
