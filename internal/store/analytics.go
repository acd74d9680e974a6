package store

import (
	"context"

	apperrors "payrolletl/internal/errors"
)

// TopEarner is one row of the top-earners query.
type TopEarner struct {
	EmpID      string  `json:"emp_id"`
	EmpName    string  `json:"emp_name"`
	Department string  `json:"department"`
	NetPay     float64 `json:"net_pay"`
}

// MonthlyNetPay is one row of the monthly payroll summary.
type MonthlyNetPay struct {
	Month       string  `json:"month"`
	TotalNetPay float64 `json:"total_net_pay"`
}

// DepartmentHours is one row of the average-hours query.
type DepartmentHours struct {
	Department string  `json:"department"`
	AvgHours   float64 `json:"avg_hours_worked"`
}

// TopEarners returns the highest net-pay records, limited to the given
// count. The reporting layer uses limit 5.
func (s *Store) TopEarners(ctx context.Context, limit int) ([]TopEarner, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT [Emp ID], [Emp Name], [Department], [Net Pay]
		FROM payroll_records
		ORDER BY [Net Pay] DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.NewStorageError("top earners query failed", err)
	}
	defer rows.Close()

	var result []TopEarner
	for rows.Next() {
		var row TopEarner
		if err := rows.Scan(&row.EmpID, &row.EmpName, &row.Department, &row.NetPay); err != nil {
			return nil, apperrors.NewStorageError("failed to scan top earner row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("top earners query failed", err)
	}

	return result, nil
}

// MonthlyNetPay returns total net pay grouped by calendar month of the
// pay date, ordered chronologically.
func (s *Store) MonthlyNetPay(ctx context.Context) ([]MonthlyNetPay, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', [Pay Date]) AS Month, SUM([Net Pay]) AS Total_Net_Pay
		FROM payroll_records
		GROUP BY strftime('%Y-%m', [Pay Date])
		ORDER BY Month`)
	if err != nil {
		return nil, apperrors.NewStorageError("monthly net pay query failed", err)
	}
	defer rows.Close()

	var result []MonthlyNetPay
	for rows.Next() {
		var row MonthlyNetPay
		if err := rows.Scan(&row.Month, &row.TotalNetPay); err != nil {
			return nil, apperrors.NewStorageError("failed to scan monthly row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("monthly net pay query failed", err)
	}

	return result, nil
}

// AverageHoursByDepartment returns the mean hours worked per department.
func (s *Store) AverageHoursByDepartment(ctx context.Context) ([]DepartmentHours, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT Department, AVG([Hours Worked]) AS Avg_Hours_Worked
		FROM payroll_records
		GROUP BY Department`)
	if err != nil {
		return nil, apperrors.NewStorageError("average hours query failed", err)
	}
	defer rows.Close()

	var result []DepartmentHours
	for rows.Next() {
		var row DepartmentHours
		if err := rows.Scan(&row.Department, &row.AvgHours); err != nil {
			return nil, apperrors.NewStorageError("failed to scan average hours row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("average hours query failed", err)
	}

	return result, nil
}
