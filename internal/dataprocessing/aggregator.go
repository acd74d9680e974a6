package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	apperrors "payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// Aggregator produces per-department rollups and merges per-file
// results into a combined batch.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Summarize groups calculated records by department, summing gross pay,
// tax and net pay and counting rows. Output is sorted by department for
// deterministic exports.
func (a *Aggregator) Summarize(records []domain.PayRecord) []domain.DepartmentSummary {
	byDept := make(map[string]*domain.DepartmentSummary)

	for _, r := range records {
		s, ok := byDept[r.Department]
		if !ok {
			s = &domain.DepartmentSummary{Department: r.Department}
			byDept[r.Department] = s
		}
		s.GrossPay += r.GrossPay
		s.Tax += r.Tax
		s.NetPay += r.NetPay
		s.EmployeeCount++
	}

	summaries := make([]domain.DepartmentSummary, 0, len(byDept))
	for _, s := range byDept {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Department < summaries[j].Department
	})

	return summaries
}

// MergeResults combines N per-file results into one batch: records and
// warnings are concatenated in input order, and the per-file summaries
// are merged by department by summing the already-aggregated rows
// (sum of sums, including Employee Count) rather than recomputing from
// raw records. N = 0 yields a NO_INPUT_FILES error; the caller must
// skip persistence entirely in that case.
func (a *Aggregator) MergeResults(ctx context.Context, results []domain.FileResult) (*domain.BatchResult, error) {
	if len(results) == 0 {
		return nil, apperrors.NewNoInputFilesError()
	}

	batch := &domain.BatchResult{FileCount: len(results)}
	byDept := make(map[string]*domain.DepartmentSummary)

	for _, result := range results {
		batch.Records = append(batch.Records, result.Records...)
		batch.Warnings = append(batch.Warnings, result.Warnings...)

		for _, row := range result.Summary {
			s, ok := byDept[row.Department]
			if !ok {
				s = &domain.DepartmentSummary{Department: row.Department}
				byDept[row.Department] = s
			}
			s.GrossPay += row.GrossPay
			s.Tax += row.Tax
			s.NetPay += row.NetPay
			s.EmployeeCount += row.EmployeeCount
		}
	}

	batch.Summary = make([]domain.DepartmentSummary, 0, len(byDept))
	for _, s := range byDept {
		batch.Summary = append(batch.Summary, *s)
	}
	sort.Slice(batch.Summary, func(i, j int) bool {
		return batch.Summary[i].Department < batch.Summary[j].Department
	})

	a.logger.InfoContext(ctx, "merged per-file results",
		slog.Int("file_count", batch.FileCount),
		slog.Int("record_count", len(batch.Records)),
		slog.Int("warning_count", len(batch.Warnings)),
		slog.Int("department_count", len(batch.Summary)))

	return batch, nil
}
