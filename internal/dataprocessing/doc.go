// Package dataprocessing implements the transform stage of the payroll
// ETL pipeline: reading heterogeneous tabular sources into a raw table,
// validating and normalizing records, deriving pay and tax figures, and
// aggregating per-department summaries.
//
// The stages compose in a fixed order per source file:
//
//	ParseFile -> Normalizer.Clean -> Calculator.Compute -> Aggregator.Summarize
//
// Per-file outputs are then merged across the batch with
// Aggregator.MergeResults, which re-aggregates the already-aggregated
// summary rows rather than recomputing from raw records.
//
// Error containment follows two boundaries: a malformed row is dropped
// and the file continues; a structurally invalid file (missing columns,
// unreadable format, no rows) is rejected whole and the batch continues.
package dataprocessing
