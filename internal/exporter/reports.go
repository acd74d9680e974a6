package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"payrolletl/internal/files"
	"payrolletl/internal/store"
	"payrolletl/pkg/contracts/domain"
)

// ReportExporter writes the analytical query results and full relation
// sets as CSV files into a timestamped export folder. It is read-only
// over the store; a missing schema surfaces as a storage error that the
// caller reports without retrying.
type ReportExporter struct {
	store  *store.Store
	csv    *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter over the given store.
func NewReportExporter(st *store.Store, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		store:  st,
		csv:    NewCSVWriter(logger),
		logger: logger,
	}
}

// topEarnersLimit matches the reporting layer's "top 5" contract.
const topEarnersLimit = 5

// ExportAll writes every report into folder, each filename carrying the
// run timestamp. Empty query results skip their file rather than
// writing headers over no rows.
func (e *ReportExporter) ExportAll(ctx context.Context, folder string, now time.Time) error {
	ts := now.Format(files.TimestampFormat)

	if err := e.exportTopEarners(ctx, filepath.Join(folder, fmt.Sprintf("top_earners_%s.csv", ts))); err != nil {
		return err
	}
	if err := e.exportMonthlySummary(ctx, filepath.Join(folder, fmt.Sprintf("monthly_payroll_summary_%s.csv", ts))); err != nil {
		return err
	}
	if err := e.exportAverageHours(ctx, filepath.Join(folder, fmt.Sprintf("avg_hours_by_department_%s.csv", ts))); err != nil {
		return err
	}
	if err := e.exportRecords(ctx, filepath.Join(folder, fmt.Sprintf("complete_payroll_records_%s.csv", ts))); err != nil {
		return err
	}
	if err := e.exportSummary(ctx, filepath.Join(folder, fmt.Sprintf("department_summary_%s.csv", ts))); err != nil {
		return err
	}
	if err := e.exportWarnings(ctx, filepath.Join(folder, fmt.Sprintf("overtime_warnings_%s.csv", ts))); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "report exports complete", slog.String("folder", folder))
	return nil
}

func (e *ReportExporter) exportTopEarners(ctx context.Context, path string) error {
	earners, err := e.store.TopEarners(ctx, topEarnersLimit)
	if err != nil {
		return err
	}
	if len(earners) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(earners))
	for _, row := range earners {
		rows = append(rows, []string{row.EmpID, row.EmpName, row.Department, formatAmount(row.NetPay)})
	}

	headers := []string{domain.ColEmpID, domain.ColEmpName, domain.ColDepartment, domain.ColNetPay}
	return e.csv.WriteSimpleCSV(path, headers, rows)
}

func (e *ReportExporter) exportMonthlySummary(ctx context.Context, path string) error {
	months, err := e.store.MonthlyNetPay(ctx)
	if err != nil {
		return err
	}
	if len(months) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(months))
	for _, row := range months {
		rows = append(rows, []string{row.Month, formatAmount(row.TotalNetPay)})
	}

	return e.csv.WriteSimpleCSV(path, []string{"Month", "Total_Net_Pay"}, rows)
}

func (e *ReportExporter) exportAverageHours(ctx context.Context, path string) error {
	hours, err := e.store.AverageHoursByDepartment(ctx)
	if err != nil {
		return err
	}
	if len(hours) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(hours))
	for _, row := range hours {
		rows = append(rows, []string{row.Department, formatAmount(row.AvgHours)})
	}

	return e.csv.WriteSimpleCSV(path, []string{domain.ColDepartment, "Avg_Hours_Worked"}, rows)
}

func (e *ReportExporter) exportRecords(ctx context.Context, path string) error {
	records, err := e.store.PayrollRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordStrings(r))
	}

	return e.csv.WriteSimpleCSV(path, domain.RecordColumns, rows)
}

func (e *ReportExporter) exportSummary(ctx context.Context, path string) error {
	summaries, err := e.store.DepartmentSummaries(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, summaryStrings(s))
	}

	return e.csv.WriteSimpleCSV(path, domain.SummaryColumns, rows)
}

func (e *ReportExporter) exportWarnings(ctx context.Context, path string) error {
	warnings, err := e.store.OvertimeWarnings(ctx)
	if err != nil {
		return err
	}
	if len(warnings) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(warnings))
	for _, r := range warnings {
		rows = append(rows, recordStrings(r))
	}

	return e.csv.WriteSimpleCSV(path, domain.RecordColumns, rows)
}
