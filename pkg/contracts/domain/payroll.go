package domain

import (
	"time"
)

// PayRecord represents one employee's pay event for a single pay date.
// The first seven fields come from the source file; the remaining fields
// are derived by the pay calculator and must never be supplied as input.
type PayRecord struct {
	EmpID       string    `json:"emp_id" db:"Emp ID" validate:"required"`
	EmpName     string    `json:"emp_name" db:"Emp Name" validate:"required"`
	Department  string    `json:"department" db:"Department" validate:"required"`
	HourlyRate  float64   `json:"hourly_rate" db:"Hourly Rate" validate:"gt=0"`
	HoursWorked float64   `json:"hours_worked" db:"Hours Worked" validate:"gt=0"`
	PayDate     time.Time `json:"pay_date" db:"Pay Date"`
	Notes       string    `json:"notes" db:"Notes"`

	// Derived fields (computed, never input)
	GrossPay      float64 `json:"gross_pay" db:"Gross Pay"`
	HoursFlag     string  `json:"hours_flag" db:"Hours Flag"`
	TaxRate       float64 `json:"tax_rate" db:"Tax Rate"`
	Tax           float64 `json:"tax" db:"Tax"`
	NetPay        float64 `json:"net_pay" db:"Net Pay"`
	OvertimeHours float64 `json:"overtime_hours" db:"Overtime Hours"`
	RegularHours  float64 `json:"regular_hours" db:"Regular Hours"`
}

// HoursFlag values
const (
	HoursFlagOvertime = "Overtime"
	HoursFlagRegular  = "Regular"
)

// DepartmentSummary represents the per-department rollup of pay figures.
type DepartmentSummary struct {
	Department    string  `json:"department" db:"Department"`
	GrossPay      float64 `json:"gross_pay" db:"Gross Pay"`
	Tax           float64 `json:"tax" db:"Tax"`
	NetPay        float64 `json:"net_pay" db:"Net Pay"`
	EmployeeCount int64   `json:"employee_count" db:"Employee Count"`
}

// FileResult holds the transform output for a single source file.
// Warnings is an independent materialized copy of the overtime subset,
// never a view over Records.
type FileResult struct {
	SourceFile string              `json:"source_file"`
	Records    []PayRecord         `json:"records"`
	Summary    []DepartmentSummary `json:"summary"`
	Warnings   []PayRecord         `json:"warnings"`
}

// BatchResult is the combined output of a multi-file run: records and
// warnings concatenated in file order, summaries merged by department
// from the already-aggregated per-file rows (sum of sums, not a
// recompute from raw records).
type BatchResult struct {
	Records   []PayRecord         `json:"records"`
	Summary   []DepartmentSummary `json:"summary"`
	Warnings  []PayRecord         `json:"warnings"`
	FileCount int                 `json:"file_count"`
}

// RequiredColumns are the source columns every input file must carry,
// matched case- and space-exact. Order matters: error messages and
// exports list columns in this order.
var RequiredColumns = []string{
	ColEmpID,
	ColEmpName,
	ColDepartment,
	ColHourlyRate,
	ColHoursWorked,
	ColPayDate,
	ColNotes,
}

// Stable column names shared with the reporting layer. These are literal
// strings used in query predicates downstream and must not change.
const (
	ColEmpID         = "Emp ID"
	ColEmpName       = "Emp Name"
	ColDepartment    = "Department"
	ColHourlyRate    = "Hourly Rate"
	ColHoursWorked   = "Hours Worked"
	ColPayDate       = "Pay Date"
	ColNotes         = "Notes"
	ColGrossPay      = "Gross Pay"
	ColHoursFlag     = "Hours Flag"
	ColTaxRate       = "Tax Rate"
	ColTax           = "Tax"
	ColNetPay        = "Net Pay"
	ColOvertimeHours = "Overtime Hours"
	ColRegularHours  = "Regular Hours"
	ColEmployeeCount = "Employee Count"
)

// RecordColumns is the full column set of a processed pay record, in
// export and storage order.
var RecordColumns = []string{
	ColEmpID,
	ColEmpName,
	ColDepartment,
	ColHourlyRate,
	ColHoursWorked,
	ColPayDate,
	ColNotes,
	ColGrossPay,
	ColHoursFlag,
	ColTaxRate,
	ColTax,
	ColNetPay,
	ColOvertimeHours,
	ColRegularHours,
}

// SummaryColumns is the column set of a department summary row.
var SummaryColumns = []string{
	ColDepartment,
	ColGrossPay,
	ColTax,
	ColNetPay,
	ColEmployeeCount,
}

// PayDateFormat is the canonical date format for exports and storage.
const PayDateFormat = "2006-01-02"
