package dataprocessing

import (
	"context"
	"log/slog"

	"payrolletl/pkg/contracts/domain"
)

// Standard work week before overtime applies, in hours.
const regularHoursCap = 40.0

// DefaultTaxRate applies to any department without a configured rate.
const DefaultTaxRate = 0.10

// taxRates maps normalized department names to their configured tax
// rates. Keys must match the title-cased normalization exactly.
var taxRates = map[string]float64{
	"It":        0.15,
	"Hr":        0.12,
	"Finance":   0.14,
	"Sales":     0.16,
	"Marketing": 0.13,
}

// TaxRateFor returns the tax rate for a normalized department name. It
// is a total function: unrecognized departments get DefaultTaxRate.
func TaxRateFor(department string) float64 {
	if rate, ok := taxRates[department]; ok {
		return rate
	}
	return DefaultTaxRate
}

// Calculator derives compensation and tax figures for clean records.
// It is deterministic and has no failure mode: inputs are already
// validated positive by the normalizer.
type Calculator struct {
	logger *slog.Logger
}

// NewCalculator creates a new pay calculator.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

// Compute fills in the derived fields of every record in place and
// returns the same slice.
func (c *Calculator) Compute(ctx context.Context, records []domain.PayRecord) []domain.PayRecord {
	var overtime int

	for i := range records {
		r := &records[i]

		r.GrossPay = r.HourlyRate * r.HoursWorked
		r.TaxRate = TaxRateFor(r.Department)
		r.Tax = r.GrossPay * r.TaxRate
		r.NetPay = r.GrossPay - r.Tax

		if r.HoursWorked > regularHoursCap {
			r.HoursFlag = domain.HoursFlagOvertime
			r.RegularHours = regularHoursCap
			r.OvertimeHours = r.HoursWorked - regularHoursCap
			overtime++
		} else {
			r.HoursFlag = domain.HoursFlagRegular
			r.RegularHours = r.HoursWorked
			r.OvertimeHours = 0
		}
	}

	c.logger.InfoContext(ctx, "computed pay figures",
		slog.Int("record_count", len(records)),
		slog.Int("overtime_count", overtime))

	return records
}

// OvertimeWarnings returns the records flagged Overtime as an
// independent copy. Mutating the returned slice never affects the
// source records once both are materialized for persistence.
func (c *Calculator) OvertimeWarnings(records []domain.PayRecord) []domain.PayRecord {
	warnings := make([]domain.PayRecord, 0)
	for _, r := range records {
		if r.HoursFlag == domain.HoursFlagOvertime {
			warnings = append(warnings, r)
		}
	}
	return warnings
}
