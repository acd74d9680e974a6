package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/store"
	"payrolletl/pkg/contracts/domain"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "payroll.db"), nil)

	low := sampleRecord()
	high := sampleRecord()
	high.EmpID = "E2"
	high.EmpName = "Bob Jones"
	high.NetPay = 1200

	batch := &domain.BatchResult{
		Records:  []domain.PayRecord{low, high},
		Warnings: []domain.PayRecord{low},
		Summary: []domain.DepartmentSummary{
			{Department: "It", GrossPay: 2400, Tax: 435, NetPay: 1965, EmployeeCount: 2},
		},
		FileCount: 1,
	}
	require.NoError(t, st.SaveBatch(context.Background(), batch, store.ModeReplace))
	return st
}

func TestReportExporter_ExportAll(t *testing.T) {
	ctx := context.Background()
	folder := t.TempDir()
	now := time.Date(2025, 3, 14, 9, 30, 15, 0, time.UTC)

	e := NewReportExporter(seededStore(t), nil)
	require.NoError(t, e.ExportAll(ctx, folder, now))

	ts := "2025-03-14_09-30-15"
	for _, name := range []string{
		"top_earners_" + ts + ".csv",
		"monthly_payroll_summary_" + ts + ".csv",
		"avg_hours_by_department_" + ts + ".csv",
		"complete_payroll_records_" + ts + ".csv",
		"department_summary_" + ts + ".csv",
		"overtime_warnings_" + ts + ".csv",
	} {
		_, err := os.Stat(filepath.Join(folder, name))
		assert.NoError(t, err, name)
	}

	earners := readCSV(t, filepath.Join(folder, "top_earners_"+ts+".csv"))
	require.Len(t, earners, 3)
	assert.Equal(t, []string{"Emp ID", "Emp Name", "Department", "Net Pay"}, earners[0])
	// Highest net pay first
	assert.Equal(t, "E2", earners[1][0])
	assert.Equal(t, "1200", earners[1][3])
	assert.Equal(t, "E1", earners[2][0])

	monthly := readCSV(t, filepath.Join(folder, "monthly_payroll_summary_"+ts+".csv"))
	require.Len(t, monthly, 2)
	assert.Equal(t, []string{"Month", "Total_Net_Pay"}, monthly[0])
	assert.Equal(t, "2025-03", monthly[1][0])
	assert.Equal(t, "1965", monthly[1][1])

	hours := readCSV(t, filepath.Join(folder, "avg_hours_by_department_"+ts+".csv"))
	require.Len(t, hours, 2)
	assert.Equal(t, []string{"It", "45"}, hours[1])

	records := readCSV(t, filepath.Join(folder, "complete_payroll_records_"+ts+".csv"))
	require.Len(t, records, 3)
	assert.Equal(t, domain.RecordColumns, records[0])

	summary := readCSV(t, filepath.Join(folder, "department_summary_"+ts+".csv"))
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"It", "2400", "435", "1965", "2"}, summary[1])

	warnings := readCSV(t, filepath.Join(folder, "overtime_warnings_"+ts+".csv"))
	require.Len(t, warnings, 2)
	assert.Equal(t, "E1", warnings[1][0])
}

func TestReportExporter_ExportAll_EmptyDatabaseSkipsFiles(t *testing.T) {
	ctx := context.Background()
	folder := t.TempDir()

	st := store.New(filepath.Join(t.TempDir(), "payroll.db"), nil)
	require.NoError(t, st.SaveBatch(ctx, &domain.BatchResult{FileCount: 1}, store.ModeReplace))

	e := NewReportExporter(st, nil)
	require.NoError(t, e.ExportAll(ctx, folder, time.Now()))

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
