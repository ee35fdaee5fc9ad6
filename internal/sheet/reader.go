// Package sheet loads tabular exports into header and record slices.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// Extensions accepted as input files.
var Extensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

var ErrNoHeader = errors.New("file has no header row")

// Table is the content of the first sheet of a file.
type Table struct {
	Header  []string
	Records [][]string
	// Positions holds the 1-based data row of each record, counting the
	// blank rows that were skipped.
	Positions []int
}

// Supported reports whether path carries a recognized extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads the first sheet of the workbook (or the csv file) at path.
// Records that are entirely blank are skipped.
func Load(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, xerrors.Wrap(err, "open "+path)
	}
	defer f.Close()

	var rows [][]string
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		rows, err = readCSV(f)
	} else {
		rows, err = readWorkbook(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return toTable(rows)
}

func readWorkbook(r io.Reader) ([][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	return wb.GetRows(sheets[0])
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

func toTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if isBlank(header) {
		return nil, ErrNoHeader
	}

	t := &Table{Header: header}
	for i, rec := range rows[1:] {
		if isBlank(rec) {
			continue
		}
		t.Records = append(t.Records, rec)
		t.Positions = append(t.Positions, i+1)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
