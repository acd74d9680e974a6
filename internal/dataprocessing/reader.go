package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "payrolletl/internal/errors"
)

// RawTable is the untyped tabular structure produced by the source
// reader: one ordered header row and ordered data rows, every cell a
// string. Rows may be ragged; consumers index through ColumnIndex and
// must bounds-check.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// IsEmpty reports whether the table holds no data rows.
func (t *RawTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex returns the position of the named column. Header matching
// is case- and space-exact per the input contract.
func (t *RawTable) ColumnIndex(name string) (int, bool) {
	for i, header := range t.Headers {
		if header == name {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the trimmed value of the given column in a row, or ""
// when the row is too short.
func (t *RawTable) Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// ParseFile reads one payroll source file into a RawTable, dispatching
// on the file extension. Delimited text is read with encoding/csv,
// spreadsheets with excelize. Any other extension yields an
// UNSUPPORTED_FORMAT error and no output.
func ParseFile(path string) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(path)
	case ".xlsx", ".xls":
		return parseExcel(path)
	default:
		return nil, apperrors.NewUnsupportedFormatError(path)
	}
}

// parseCSV reads a delimited text file. Ragged rows are tolerated here;
// the normalizer decides row validity.
func parseCSV(path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", path), err)
	}

	if len(records) == 0 {
		return &RawTable{}, nil
	}

	return &RawTable{
		Headers: stripBOM(records[0]),
		Rows:    records[1:],
	}, nil
}

// parseExcel reads the first sheet of a spreadsheet file.
func parseExcel(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &RawTable{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}

	if len(rows) == 0 {
		return &RawTable{}, nil
	}

	return &RawTable{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// CSV exports from spreadsheet tools routinely carry one.
func stripBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	return headers
}
