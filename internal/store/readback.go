package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// PayrollRecords returns every row of the payroll_records relation set.
func (s *Store) PayrollRecords(ctx context.Context) ([]domain.PayRecord, error) {
	return s.readRecords(ctx, "payroll_records")
}

// OvertimeWarnings returns every row of the overtime_warnings relation set.
func (s *Store) OvertimeWarnings(ctx context.Context) ([]domain.PayRecord, error) {
	return s.readRecords(ctx, "overtime_warnings")
}

// DepartmentSummaries returns every row of the department_summary
// relation set, ordered by department.
func (s *Store) DepartmentSummaries(ctx context.Context) ([]domain.DepartmentSummary, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT "Department", "Gross Pay", "Tax", "Net Pay", "Employee Count"
		FROM department_summary
		ORDER BY "Department"`)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read department_summary", err)
	}
	defer rows.Close()

	var result []domain.DepartmentSummary
	for rows.Next() {
		var row domain.DepartmentSummary
		if err := rows.Scan(&row.Department, &row.GrossPay, &row.Tax, &row.NetPay, &row.EmployeeCount); err != nil {
			return nil, apperrors.NewStorageError("failed to scan summary row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to read department_summary", err)
	}

	return result, nil
}

func (s *Store) readRecords(ctx context.Context, table string) ([]domain.PayRecord, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(`
		SELECT "Emp ID", "Emp Name", "Department", "Hourly Rate", "Hours Worked",
		       "Pay Date", "Notes", "Gross Pay", "Hours Flag", "Tax Rate", "Tax",
		       "Net Pay", "Overtime Hours", "Regular Hours"
		FROM %s`, table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", table), err)
	}
	defer rows.Close()

	var result []domain.PayRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to scan row from %s", table), err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", table), err)
	}

	return result, nil
}

func scanRecord(rows *sql.Rows) (domain.PayRecord, error) {
	var r domain.PayRecord
	var payDate string

	err := rows.Scan(&r.EmpID, &r.EmpName, &r.Department, &r.HourlyRate, &r.HoursWorked,
		&payDate, &r.Notes, &r.GrossPay, &r.HoursFlag, &r.TaxRate, &r.Tax,
		&r.NetPay, &r.OvertimeHours, &r.RegularHours)
	if err != nil {
		return domain.PayRecord{}, err
	}

	if t, err := time.Parse(domain.PayDateFormat, payDate); err == nil {
		r.PayDate = t
	}

	return r, nil
}
