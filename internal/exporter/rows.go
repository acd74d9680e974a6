package exporter

import (
	"strconv"

	"payrolletl/pkg/contracts/domain"
)

// formatAmount renders a float without artificial rounding so exported
// figures match the computed values exactly.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recordCells converts a pay record to typed spreadsheet cells in
// domain.RecordColumns order.
func recordCells(r domain.PayRecord) []interface{} {
	return []interface{}{
		r.EmpID,
		r.EmpName,
		r.Department,
		r.HourlyRate,
		r.HoursWorked,
		r.PayDate.Format(domain.PayDateFormat),
		r.Notes,
		r.GrossPay,
		r.HoursFlag,
		r.TaxRate,
		r.Tax,
		r.NetPay,
		r.OvertimeHours,
		r.RegularHours,
	}
}

// recordStrings converts a pay record to CSV fields in
// domain.RecordColumns order.
func recordStrings(r domain.PayRecord) []string {
	return []string{
		r.EmpID,
		r.EmpName,
		r.Department,
		formatAmount(r.HourlyRate),
		formatAmount(r.HoursWorked),
		r.PayDate.Format(domain.PayDateFormat),
		r.Notes,
		formatAmount(r.GrossPay),
		r.HoursFlag,
		formatAmount(r.TaxRate),
		formatAmount(r.Tax),
		formatAmount(r.NetPay),
		formatAmount(r.OvertimeHours),
		formatAmount(r.RegularHours),
	}
}

// summaryCells converts a summary row to typed spreadsheet cells in
// domain.SummaryColumns order.
func summaryCells(s domain.DepartmentSummary) []interface{} {
	return []interface{}{
		s.Department,
		s.GrossPay,
		s.Tax,
		s.NetPay,
		s.EmployeeCount,
	}
}

// summaryStrings converts a summary row to CSV fields in
// domain.SummaryColumns order.
func summaryStrings(s domain.DepartmentSummary) []string {
	return []string{
		s.Department,
		formatAmount(s.GrossPay),
		formatAmount(s.Tax),
		formatAmount(s.NetPay),
		strconv.FormatInt(s.EmployeeCount, 10),
	}
}
