package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "payrolletl/internal/errors"
	"payrolletl/internal/store"
)

const payrollHeader = "Emp ID,Emp Name,Department,Hourly Rate,Hours Worked,Pay Date,Notes\n"

func writeSource(t *testing.T, dir, name string, rows ...string) {
	t.Helper()
	content := payrollHeader + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestRunner(t *testing.T) (*Runner, *store.Store, string) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "payroll.db"), nil)
	exportsDir := t.TempDir()
	return New(st, exportsDir, nil), st, exportsDir
}

func TestRunner_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "march.csv",
		"E1,alice smith,it,20,45,2025-03-14,",
		"E2,bob jones,hr,15,30,2025-03-14,")

	runner, _, _ := newTestRunner(t)

	result, err := runner.ProcessFile(context.Background(), filepath.Join(dir, "march.csv"))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Alice Smith", result.Records[0].EmpName)
	assert.InDelta(t, 765.0, result.Records[0].NetPay, 1e-9)
	require.Len(t, result.Summary, 2)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "E1", result.Warnings[0].EmpID)
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSource(t, dir, "a_march.csv",
		"E1,alice smith,it,20,45,2025-03-14,",
		"E2,bob jones,hr,15,30,2025-03-14,")
	writeSource(t, dir, "b_april.csv",
		"E3,cara lee,it,30,50,2025-04-11,")

	runner, st, exportsDir := newTestRunner(t)

	batch, err := runner.Run(ctx, dir, store.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.FileCount)
	require.Len(t, batch.Records, 3)
	// Name order across files, row order within
	assert.Equal(t, "E1", batch.Records[0].EmpID)
	assert.Equal(t, "E3", batch.Records[2].EmpID)

	persisted, err := st.PayrollRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 3)

	warnings, err := st.OvertimeWarnings(ctx)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)

	entries, err := os.ReadDir(exportsDir)
	require.NoError(t, err)

	var xlsxCount, folderCount int
	for _, entry := range entries {
		switch {
		case entry.IsDir() && strings.HasPrefix(entry.Name(), "payroll_exports_"):
			folderCount++
		case strings.HasSuffix(entry.Name(), ".xlsx"):
			xlsxCount++
		}
	}
	assert.Equal(t, 3, xlsxCount)
	assert.Equal(t, 1, folderCount)
}

func TestRunner_Run_SkipsBadFilesAndContinues(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// Missing most required columns
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_bad.csv"),
		[]byte("Emp ID,Emp Name\nE9,Zed\n"), 0o644))
	// Header only
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_empty.csv"),
		[]byte(payrollHeader), 0o644))
	writeSource(t, dir, "c_good.csv",
		"E1,alice smith,it,20,40,2025-03-14,")

	runner, _, _ := newTestRunner(t)

	batch, err := runner.Run(ctx, dir, store.ModeReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.FileCount)
	require.Len(t, batch.Records, 1)
	assert.Equal(t, "E1", batch.Records[0].EmpID)
}

func TestRunner_Run_NoInputFiles(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{"empty directory", func(t *testing.T, dir string) {}},
		{"no readable formats", func(t *testing.T, dir string) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
		}},
		{"every file fails", func(t *testing.T, dir string) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
				[]byte("Emp ID\nE1\n"), 0o644))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			runner, st, _ := newTestRunner(t)

			batch, err := runner.Run(ctx, dir, store.ModeReplace)
			assert.Nil(t, batch)
			require.True(t, apperrors.IsType(err, apperrors.ErrTypeNoInputFiles))

			// Nothing was persisted
			_, err = st.PayrollRecords(ctx)
			assert.Error(t, err)
		})
	}
}

func TestRunner_Run_AppendAccumulates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSource(t, dir, "march.csv",
		"E1,alice smith,it,20,40,2025-03-14,")

	runner, st, _ := newTestRunner(t)

	_, err := runner.Run(ctx, dir, store.ModeAppend)
	require.NoError(t, err)
	_, err = runner.Run(ctx, dir, store.ModeAppend)
	require.NoError(t, err)

	persisted, err := st.PayrollRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestRunner_RunAnalysis(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSource(t, dir, "march.csv",
		"E1,alice smith,it,20,45,2025-03-14,")

	runner, _, exportsDir := newTestRunner(t)

	_, err := runner.Run(ctx, dir, store.ModeReplace)
	require.NoError(t, err)

	folder, err := runner.RunAnalysis(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(folder), "payroll_exports_"))
	assert.Equal(t, exportsDir, filepath.Dir(folder))

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestRunner_Run_MergedSummarySumsAcrossFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeSource(t, dir, "a.csv", "E1,alice,it,20,40,2025-03-14,")
	writeSource(t, dir, "b.csv", "E2,bob,it,10,40,2025-03-14,")

	runner, _, _ := newTestRunner(t)

	batch, err := runner.Run(ctx, dir, store.ModeReplace)
	require.NoError(t, err)

	require.Len(t, batch.Summary, 1)
	it := batch.Summary[0]
	assert.Equal(t, "It", it.Department)
	assert.InDelta(t, 1200.0, it.GrossPay, 1e-9)
	assert.InDelta(t, 180.0, it.Tax, 1e-9)
	assert.InDelta(t, 1020.0, it.NetPay, 1e-9)
	assert.Equal(t, int64(2), it.EmployeeCount)
}
