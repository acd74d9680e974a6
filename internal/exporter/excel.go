package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"payrolletl/internal/files"
	"payrolletl/pkg/contracts/domain"
)

// ExcelWriter writes pipeline output as xlsx workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteBatchExports writes the three per-batch spreadsheet exports into
// dir, each filename carrying the run timestamp: the cleaned/processed
// records, the department summary, and the overtime warning report.
func (w *ExcelWriter) WriteBatchExports(dir string, batch *domain.BatchResult, now time.Time) error {
	ts := now.Format(files.TimestampFormat)

	exports := []struct {
		path  string
		write func(path string) error
	}{
		{
			path: filepath.Join(dir, fmt.Sprintf("cleaned_processed_payroll_%s.xlsx", ts)),
			write: func(path string) error {
				return w.WriteRecords(path, batch.Records)
			},
		},
		{
			path: filepath.Join(dir, fmt.Sprintf("department_summary_%s.xlsx", ts)),
			write: func(path string) error {
				return w.WriteSummary(path, batch.Summary)
			},
		},
		{
			path: filepath.Join(dir, fmt.Sprintf("hours_warning_report_%s.xlsx", ts)),
			write: func(path string) error {
				return w.WriteRecords(path, batch.Warnings)
			},
		},
	}

	for _, export := range exports {
		if err := export.write(export.path); err != nil {
			return err
		}
		w.logger.Info("Wrote spreadsheet export", slog.String("path", export.path))
	}

	return nil
}

// WriteRecords writes pay records to an xlsx file with the stable
// record column headers.
func (w *ExcelWriter) WriteRecords(path string, records []domain.PayRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordCells(r))
	}
	return writeSheet(path, domain.RecordColumns, rows)
}

// WriteSummary writes department summary rows to an xlsx file.
func (w *ExcelWriter) WriteSummary(path string, summaries []domain.DepartmentSummary) error {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, summaryCells(s))
	}
	return writeSheet(path, domain.SummaryColumns, rows)
}

// writeSheet writes one header row plus data rows to the first sheet of
// a new workbook.
func writeSheet(path string, headers []string, rows [][]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}
