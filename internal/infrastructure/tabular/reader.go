// Package tabular reads classification sources into table.Workbook values.
// Excel workbooks are read with excelize; CSV exports are decoded from their
// legacy encodings with golang.org/x/text.
package tabular

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// Options tune how one source is read.
type Options struct {
	// Encoding names the character set of CSV sources, using WHATWG labels
	// such as "euc-kr" or "shift_jis". Empty means UTF-8. Ignored for xlsx.
	Encoding string
}

// Reader reads a whole source into memory.
type Reader interface {
	Read(ctx context.Context, path string, opts Options) (*table.Workbook, error)
}

// FileReader dispatches on the file extension.
type FileReader struct {
	log logging.Logger
}

// NewFileReader returns a FileReader. A nil logger discards output.
func NewFileReader(log logging.Logger) *FileReader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &FileReader{log: log.Named("tabular")}
}

// Read implements Reader.
func (r *FileReader) Read(ctx context.Context, path string, opts Options) (*table.Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var (
		wb  *table.Workbook
		err error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		wb, err = readXLSX(ctx, path)
	case ".csv":
		wb, err = readDelimited(path, ',', opts.Encoding)
	case ".tsv", ".txt":
		wb, err = readDelimited(path, '\t', opts.Encoding)
	case ".xls":
		return nil, errors.New(errors.CodeUnsupportedFormat, "legacy .xls workbooks are not supported").
			WithDetailf("path=%s: save the workbook as .xlsx", path)
	default:
		return nil, errors.New(errors.CodeUnsupportedFormat, "unsupported source format").
			WithDetailf("path=%s", path)
	}
	if err != nil {
		return nil, err
	}
	r.log.Debug("source read",
		logging.String("path", path),
		logging.Int("sheets", len(wb.Sheets)),
	)
	return wb, nil
}
