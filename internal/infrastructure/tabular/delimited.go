package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// decoderFor resolves a WHATWG encoding label. A leading byte order mark
// always wins over the label.
func decoderFor(label string) (transform.Transformer, error) {
	var enc encoding.Encoding = unicode.UTF8
	if label != "" {
		e, err := htmlindex.Get(label)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSourceEncoding, "unknown encoding").WithDetail(label)
		}
		enc = e
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// readDelimited loads a CSV or TSV export as a single-sheet workbook named
// after the file.
func readDelimited(path string, comma rune, label string) (*table.Workbook, error) {
	dec, err := decoderFor(label)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceOpen, "open source").WithDetail(path)
	}
	defer f.Close()

	rows, err := parseDelimited(transform.NewReader(f, dec), comma)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSourceRead, "parse source").WithDetail(path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &table.Workbook{Path: path, Sheets: []table.Sheet{{Name: name, Rows: rows}}}, nil
}

func parseDelimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}
