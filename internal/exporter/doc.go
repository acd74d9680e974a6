// Package exporter renders pipeline output for external consumers: the
// three per-batch spreadsheet exports (cleaned records, department
// summary, overtime warnings) and the CSV report exports of the
// analytical queries. It is a thin writer layer; all business rules
// live upstream in dataprocessing and store.
package exporter
