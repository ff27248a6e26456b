package tabular

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// readXLSX loads every sheet of an Excel workbook in workbook order.
func readXLSX(ctx context.Context, path string) (*table.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceOpen, "open workbook").WithDetail(path)
	}
	defer f.Close()

	wb := &table.Workbook{Path: path}
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSourceRead, "read sheet").
				WithDetailf("path=%s sheet=%s", path, name)
		}
		wb.Sheets = append(wb.Sheets, table.Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}
