// Package store provides the SQLite-backed persistence layer for the
// payroll pipeline: the three relation sets (payroll_records,
// department_summary, overtime_warnings), the append and replace load
// modes, a read-back validation query, and the read-only analytical
// queries consumed by the reporting layer.
//
// The store is single-process and unguarded: one exclusive connection
// is opened and closed per logical operation, never held across the
// pipeline.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	apperrors "payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// LoadMode selects the persistence write semantics.
type LoadMode string

const (
	// ModeAppend adds rows to the existing relation sets, keeping prior
	// rows. Used for single-file historical accumulation.
	ModeAppend LoadMode = "append"
	// ModeReplace wholesale-replaces the contents of all three relation
	// sets with the batch output. A destructive full overwrite, not a
	// merge with prior runs.
	ModeReplace LoadMode = "replace"
)

// Store persists pipeline output to a SQLite database file.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for the given database path. Each operation
// opens its own connection, so the path must be a file: an in-memory
// database would not survive between operations.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// open establishes the per-operation connection.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database", err)
	}
	return db, nil
}

const recordsSchema = `(
	"Emp ID" TEXT NOT NULL,
	"Emp Name" TEXT NOT NULL,
	"Department" TEXT NOT NULL,
	"Hourly Rate" REAL NOT NULL,
	"Hours Worked" REAL NOT NULL,
	"Pay Date" TEXT NOT NULL,
	"Notes" TEXT NOT NULL DEFAULT '',
	"Gross Pay" REAL NOT NULL,
	"Hours Flag" TEXT NOT NULL,
	"Tax Rate" REAL NOT NULL,
	"Tax" REAL NOT NULL,
	"Net Pay" REAL NOT NULL,
	"Overtime Hours" REAL NOT NULL,
	"Regular Hours" REAL NOT NULL
)`

const summarySchema = `(
	"Department" TEXT NOT NULL,
	"Gross Pay" REAL NOT NULL,
	"Tax" REAL NOT NULL,
	"Net Pay" REAL NOT NULL,
	"Employee Count" INTEGER NOT NULL
)`

const insertRecordSQL = `INSERT INTO %s (
	"Emp ID", "Emp Name", "Department", "Hourly Rate", "Hours Worked",
	"Pay Date", "Notes", "Gross Pay", "Hours Flag", "Tax Rate", "Tax",
	"Net Pay", "Overtime Hours", "Regular Hours"
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SaveBatch writes the combined batch output into the three relation
// sets. ModeReplace drops and recreates them inside one transaction;
// ModeAppend creates them if absent and inserts on top of prior rows.
func (s *Store) SaveBatch(ctx context.Context, batch *domain.BatchResult, mode LoadMode) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if mode == ModeReplace {
		for _, table := range []string{"payroll_records", "department_summary", "overtime_warnings"} {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
				return apperrors.NewStorageError(fmt.Sprintf("failed to drop table %s", table), err)
			}
		}
	}

	if err := migrate(ctx, tx); err != nil {
		return err
	}

	if err := insertRecords(ctx, tx, "payroll_records", batch.Records); err != nil {
		return err
	}
	if err := insertRecords(ctx, tx, "overtime_warnings", batch.Warnings); err != nil {
		return err
	}
	if err := insertSummaries(ctx, tx, batch.Summary); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit batch", err)
	}

	s.logger.InfoContext(ctx, "batch persisted",
		slog.String("mode", string(mode)),
		slog.String("database", s.path),
		slog.Int("records", len(batch.Records)),
		slog.Int("summaries", len(batch.Summary)),
		slog.Int("warnings", len(batch.Warnings)))

	return nil
}

// migrate creates the relation sets when absent.
func migrate(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS payroll_records ` + recordsSchema,
		`CREATE TABLE IF NOT EXISTS overtime_warnings ` + recordsSchema,
		`CREATE TABLE IF NOT EXISTS department_summary ` + summarySchema,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStorageError("failed to create schema", err)
		}
	}
	return nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, table string, records []domain.PayRecord) error {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(insertRecordSQL, table))
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to prepare insert for %s", table), err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.EmpID, r.EmpName, r.Department, r.HourlyRate, r.HoursWorked,
			r.PayDate.Format(domain.PayDateFormat), r.Notes, r.GrossPay,
			r.HoursFlag, r.TaxRate, r.Tax, r.NetPay, r.OvertimeHours, r.RegularHours)
		if err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to insert into %s", table), err)
		}
	}
	return nil
}

func insertSummaries(ctx context.Context, tx *sql.Tx, summaries []domain.DepartmentSummary) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO department_summary (
		"Department", "Gross Pay", "Tax", "Net Pay", "Employee Count"
	) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return apperrors.NewStorageError("failed to prepare insert for department_summary", err)
	}
	defer stmt.Close()

	for _, row := range summaries {
		if _, err := stmt.ExecContext(ctx, row.Department, row.GrossPay, row.Tax, row.NetPay, row.EmployeeCount); err != nil {
			return apperrors.NewStorageError("failed to insert into department_summary", err)
		}
	}
	return nil
}

// DepartmentNetPay is one row of the read-back validation result.
type DepartmentNetPay struct {
	Department  string  `json:"department"`
	TotalNetPay float64 `json:"total_net_pay"`
}

// ValidateLoad confirms a load succeeded by grouping payroll_records by
// department and summing net pay. An empty result means validation
// failed; the caller logs it and continues.
func (s *Store) ValidateLoad(ctx context.Context) ([]DepartmentNetPay, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT Department, SUM([Net Pay]) AS Total_Net_Pay
		FROM payroll_records
		GROUP BY Department`)
	if err != nil {
		return nil, apperrors.NewStorageError("read-back validation query failed", err)
	}
	defer rows.Close()

	var result []DepartmentNetPay
	for rows.Next() {
		var row DepartmentNetPay
		if err := rows.Scan(&row.Department, &row.TotalNetPay); err != nil {
			return nil, apperrors.NewStorageError("failed to scan validation row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("read-back validation failed", err)
	}

	return result, nil
}
