package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	apperrors "payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// payDateLayouts are the accepted Pay Date formats, tried in order.
var payDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// Normalizer validates a raw source table and produces clean PayRecords.
// Structural problems (no rows, missing required columns) reject the
// whole table; malformed rows are dropped individually.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a new record normalizer.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Clean validates and normalizes the raw table. It returns the surviving
// records; an empty slice is a valid result when every row was dropped.
func (n *Normalizer) Clean(ctx context.Context, table *RawTable) ([]domain.PayRecord, error) {
	if table.IsEmpty() {
		return nil, apperrors.NewEmptyInputError()
	}

	columns := make(map[string]int, len(domain.RequiredColumns))
	var missing []string
	for _, name := range domain.RequiredColumns {
		idx, ok := table.ColumnIndex(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(missing)
	}

	records := make([]domain.PayRecord, 0, len(table.Rows))
	var droppedDates, droppedNumeric int

	for i, row := range table.Rows {
		payDate, ok := parsePayDate(table.Cell(row, columns[domain.ColPayDate]))
		if !ok {
			droppedDates++
			n.logger.WarnContext(ctx, "dropping row with unparseable pay date",
				slog.Int("row", i+1),
				slog.String("value", table.Cell(row, columns[domain.ColPayDate])))
			continue
		}

		rate, rateOK := parseAmount(table.Cell(row, columns[domain.ColHourlyRate]))
		hours, hoursOK := parseAmount(table.Cell(row, columns[domain.ColHoursWorked]))
		if !rateOK || !hoursOK || rate <= 0 || hours <= 0 {
			droppedNumeric++
			n.logger.WarnContext(ctx, "dropping row with invalid rate or hours",
				slog.Int("row", i+1),
				slog.String("hourly_rate", table.Cell(row, columns[domain.ColHourlyRate])),
				slog.String("hours_worked", table.Cell(row, columns[domain.ColHoursWorked])))
			continue
		}

		records = append(records, domain.PayRecord{
			EmpID:       table.Cell(row, columns[domain.ColEmpID]),
			EmpName:     titleCase(table.Cell(row, columns[domain.ColEmpName])),
			Department:  titleCase(table.Cell(row, columns[domain.ColDepartment])),
			HourlyRate:  rate,
			HoursWorked: hours,
			PayDate:     payDate,
			Notes:       table.Cell(row, columns[domain.ColNotes]),
		})
	}

	n.logger.InfoContext(ctx, "normalized source table",
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("clean_rows", len(records)),
		slog.Int("dropped_bad_dates", droppedDates),
		slog.Int("dropped_bad_numerics", droppedNumeric))

	return records, nil
}

// parsePayDate tries the accepted date layouts in order.
func parsePayDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range payDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a numeric cell. Thousands separators are stripped;
// non-numeric and non-finite values are invalid rather than zero.
func parseAmount(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// titleCase capitalizes the first letter of every letter run and
// lowercases the rest, so "  iT dept " normalizes to "It Dept" and
// department lookups match their configured keys.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}

	return b.String()
}
