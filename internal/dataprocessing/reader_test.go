package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "payrolletl/internal/errors"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_CSV(t *testing.T) {
	path := writeTempCSV(t, "payroll.csv",
		"Emp ID,Emp Name,Department\nE1,Alice,It\nE2,Bob,Hr\n")

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emp ID", "Emp Name", "Department"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"E1", "Alice", "It"}, table.Rows[0])
}

func TestParseFile_CSV_BOM(t *testing.T) {
	path := writeTempCSV(t, "bom.csv",
		"\uFEFFEmp ID,Emp Name\nE1,Alice\n")

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Emp ID", table.Headers[0])
}

func TestParseFile_CSV_RaggedRows(t *testing.T) {
	path := writeTempCSV(t, "ragged.csv",
		"Emp ID,Emp Name,Notes\nE1,Alice\nE2,Bob,extra,beyond\n")

	table, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 2)
	assert.Len(t, table.Rows[1], 4)
}

func TestParseFile_CSV_Empty(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "")

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}

func TestParseFile_CSV_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "headers.csv", "Emp ID,Emp Name\n")

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
	assert.Equal(t, []string{"Emp ID", "Emp Name"}, table.Headers)
}

func TestParseFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payroll.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Emp ID", "Emp Name", "Hourly Rate"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"E1", "Alice", 20.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emp ID", "Emp Name", "Hourly Rate"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "E1", table.Rows[0][0])
	assert.Equal(t, "20.5", table.Rows[0][2])
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"payroll.txt", "payroll.json", "payroll"} {
		t.Run(name, func(t *testing.T) {
			table, err := ParseFile(filepath.Join(t.TempDir(), name))
			assert.Nil(t, table)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeUnsupportedFormat))
		})
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestRawTable_ColumnIndex(t *testing.T) {
	table := &RawTable{Headers: []string{"Emp ID", "Emp Name"}}

	idx, ok := table.ColumnIndex("Emp Name")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = table.ColumnIndex("emp name")
	assert.False(t, ok)
}

func TestRawTable_Cell(t *testing.T) {
	table := &RawTable{}
	row := []string{" E1 ", "Alice"}

	assert.Equal(t, "E1", table.Cell(row, 0))
	assert.Equal(t, "Alice", table.Cell(row, 1))
	assert.Equal(t, "", table.Cell(row, 2))
	assert.Equal(t, "", table.Cell(row, -1))
}
