// Package pipeline wires the ETL stages into a sequential batch driver.
// Files are processed one at a time; per-file failures are contained at
// the file boundary and per-row failures at the row boundary, so one
// bad file never aborts the whole batch.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"payrolletl/internal/dataprocessing"
	apperrors "payrolletl/internal/errors"
	"payrolletl/internal/exporter"
	"payrolletl/internal/files"
	"payrolletl/internal/store"
	"payrolletl/pkg/contracts/domain"
)

// Runner orchestrates one batch run: discover sources, transform each
// file, fold the per-file results into a combined batch, persist it and
// write the exports. The accumulating per-file results are owned here,
// never shared.
type Runner struct {
	logger     *slog.Logger
	normalizer *dataprocessing.Normalizer
	calculator *dataprocessing.Calculator
	aggregator *dataprocessing.Aggregator
	store      *store.Store
	excel      *exporter.ExcelWriter
	reports    *exporter.ReportExporter
	exportsDir string
}

// New creates a batch runner writing to the given store and exports
// directory.
func New(st *store.Store, exportsDir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:     logger,
		normalizer: dataprocessing.NewNormalizer(logger),
		calculator: dataprocessing.NewCalculator(logger),
		aggregator: dataprocessing.NewAggregator(logger),
		store:      st,
		excel:      exporter.NewExcelWriter(logger),
		reports:    exporter.NewReportExporter(st, logger),
		exportsDir: exportsDir,
	}
}

// ProcessFile runs extract and transform for one source file: read,
// clean, compute, summarize. The returned result is complete and
// self-contained; warnings are an independent copy of the overtime
// subset.
func (r *Runner) ProcessFile(ctx context.Context, path string) (*domain.FileResult, error) {
	table, err := dataprocessing.ParseFile(path)
	if err != nil {
		return nil, err
	}

	records, err := r.normalizer.Clean(ctx, table)
	if err != nil {
		return nil, err
	}

	records = r.calculator.Compute(ctx, records)

	return &domain.FileResult{
		SourceFile: path,
		Records:    records,
		Summary:    r.aggregator.Summarize(records),
		Warnings:   r.calculator.OvertimeWarnings(records),
	}, nil
}

// Run processes every payroll source file in dir in name order,
// persists the merged batch with the given load mode, validates the
// load and writes the spreadsheet and report exports. When no file
// processes successfully it returns a NO_INPUT_FILES error and touches
// neither the store nor the exports.
func (r *Runner) Run(ctx context.Context, dir string, mode store.LoadMode) (*domain.BatchResult, error) {
	discovery := files.NewDiscovery(dir)
	sources, err := discovery.FindSourceFiles(".")
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "starting payroll batch",
		slog.String("input_dir", dir),
		slog.String("mode", string(mode)),
		slog.Int("source_files", len(sources)))

	// Fold per-file results in processing order. Failed files are
	// logged and skipped; the batch continues.
	var results []domain.FileResult
	for _, source := range sources {
		result, err := r.ProcessFile(ctx, source.Path)
		if err != nil {
			r.logFileFailure(ctx, source.Name, err)
			continue
		}

		r.logger.InfoContext(ctx, "processed source file",
			slog.String("file", source.Name),
			slog.Int("records", len(result.Records)),
			slog.Int("warnings", len(result.Warnings)))

		results = append(results, *result)
	}

	batch, err := r.aggregator.MergeResults(ctx, results)
	if err != nil {
		return nil, err
	}

	if err := r.store.SaveBatch(ctx, batch, mode); err != nil {
		return nil, err
	}

	r.validateLoad(ctx)

	if err := r.writeExports(ctx, batch); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "payroll batch complete",
		slog.Int("files_processed", batch.FileCount),
		slog.Int("files_skipped", len(sources)-batch.FileCount),
		slog.Int("records", len(batch.Records)))

	return batch, nil
}

// RunAnalysis exports the analytical reports from the existing store
// contents without processing any source files.
func (r *Runner) RunAnalysis(ctx context.Context) (string, error) {
	folder, err := files.CreateExportFolder(r.exportsDir, time.Now())
	if err != nil {
		return "", err
	}

	if err := r.reports.ExportAll(ctx, folder, time.Now()); err != nil {
		return "", err
	}

	return folder, nil
}

// logFileFailure reports a skipped file at the severity its failure
// deserves: empty input is a warning, everything else an error.
func (r *Runner) logFileFailure(ctx context.Context, name string, err error) {
	if apperrors.IsType(err, apperrors.ErrTypeEmptyInput) {
		r.logger.WarnContext(ctx, "skipping file with no data rows",
			slog.String("file", name))
		return
	}

	r.logger.ErrorContext(ctx, "skipping file",
		slog.String("file", name),
		slog.String("error", err.Error()))
}

// validateLoad runs the read-back validation query. Failure is logged
// and never fatal.
func (r *Runner) validateLoad(ctx context.Context) {
	result, err := r.store.ValidateLoad(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "load validation failed",
			slog.String("error", err.Error()))
		return
	}
	if len(result) == 0 {
		r.logger.ErrorContext(ctx, "load validation failed: no records found in the database")
		return
	}

	for _, row := range result {
		r.logger.InfoContext(ctx, "net pay by department",
			slog.String("department", row.Department),
			slog.Float64("total_net_pay", row.TotalNetPay))
	}
}

// writeExports writes the three xlsx exports and the timestamped CSV
// report folder.
func (r *Runner) writeExports(ctx context.Context, batch *domain.BatchResult) error {
	now := time.Now()

	if err := r.excel.WriteBatchExports(r.exportsDir, batch, now); err != nil {
		return err
	}

	folder, err := files.CreateExportFolder(r.exportsDir, now)
	if err != nil {
		return err
	}

	return r.reports.ExportAll(ctx, folder, now)
}
