/*
Package payroll provides the core wage-computation engine.

PURPOSE:
  This package turns raw attendance records (check-in/out times, worked
  hours, extra hours) into per-day pay entries and per-employee monthly
  totals, given a fixed monthly base salary and allowance. It is the only
  part of the system with non-trivial logic; ingest, export, and HTTP
  surfaces live in their own packages and treat this one as a pure function.

KEY CONCEPTS IN THIS FILE (types.go):
  - AttendanceRecord: One raw input row, as it came off the sheet
  - DailyPayEntry: The computed pay for one record
  - MonthlyTotal: Per-employee aggregation of daily entries
  - WageRates: The derived daily/hourly rates for a run
  - Diagnostics: Non-fatal data problems observed during a run

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money and hour quantities
  2. Totality: Malformed duration values degrade to zero, never panic
  3. Explicitness: Invalid dates are a modeled state, not an assumed one
  4. Purity: A run is a deterministic function of its input

USAGE:
  engine := payroll.Engine{}
  result, err := engine.Compute(payroll.PayRunInput{
      Records:     records,
      BasicSalary: decimal.NewFromInt(30000),
      Allowance:   decimal.NewFromInt(5000),
  })

SEE ALSO:
  - hours.go:  Duration value parsing
  - date.go:   Calendar dates and holiday sets
  - rates.go:  Rate policy and wage-rate derivation
  - engine.go: The per-row computation and grouping
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// ATTENDANCE RECORD - One raw input row
// =============================================================================

// AttendanceRecord is one row of raw attendance input. The duration fields
// carry whatever the source sheet held: a number, an "HH:MM" string, a plain
// decimal string, or nothing at all. ParseHours normalizes them.
type AttendanceRecord struct {
	EmployeeID   EmployeeID
	EmployeeName string

	// Date may be invalid when the source cell did not parse.
	// The engine never assumes validity; see InvalidDatePolicy.
	Date Date

	// Clock times are carried through for display; they do not
	// participate in pay computation.
	InTime  string
	OutTime string

	// Raw duration values: numeric, "HH:MM" string, decimal string, or nil.
	TotalWorkingHours any
	ExtraWorkingTime  any
}

// =============================================================================
// DAILY PAY ENTRY - Computed pay for one record
// =============================================================================

// DailyPayEntry is the computed pay for a single attendance record.
// Created once by the engine and immutable thereafter.
type DailyPayEntry struct {
	EmployeeID   EmployeeID
	EmployeeName string
	Date         Date
	InTime       string
	OutTime      string
	TotalHours   decimal.Decimal
	ExtraHours   decimal.Decimal

	// DailyPay is rounded to 2 decimal places. Rounding is applied once,
	// here, never to the wage rates.
	DailyPay decimal.Decimal
}

// =============================================================================
// MONTHLY TOTAL - Per-employee aggregation
// =============================================================================

// MonthlyTotal aggregates the daily entries of one (EmployeeID, EmployeeName)
// pair. Invariant: FinalMonthlyPay = FixedMonthlyPay + DailyPaySum.
type MonthlyTotal struct {
	EmployeeID   EmployeeID
	EmployeeName string

	TotalHoursSum decimal.Decimal
	ExtraHoursSum decimal.Decimal
	DailyPaySum   decimal.Decimal

	// FixedMonthlyPay is basic salary + allowance, constant across the run.
	FixedMonthlyPay decimal.Decimal

	// FinalMonthlyPay is DailyPaySum + FixedMonthlyPay.
	FinalMonthlyPay decimal.Decimal
}

// =============================================================================
// WAGE RATES - Derived once per run, read-only across all rows
// =============================================================================

type WageRates struct {
	DailyWage  decimal.Decimal
	HourlyWage decimal.Decimal
}

// =============================================================================
// PAY RUN INPUT / RESULT
// =============================================================================

// InvalidDatePolicy controls what the engine does with a record whose date
// failed to parse. The multiplier cannot be decided for such a record, so
// the caller picks one of two documented behaviors.
type InvalidDatePolicy int

const (
	// InvalidDateKeepRow keeps the row in the daily breakdown with a 1.0
	// multiplier and records a diagnostic. This is the default.
	InvalidDateKeepRow InvalidDatePolicy = iota

	// InvalidDateExcludeRow drops the row from the daily breakdown (and
	// therefore from the monthly totals) and records a diagnostic.
	InvalidDateExcludeRow
)

// PayRunInput is everything one run needs. Holidays defaults to the empty
// set; Rates defaults to DefaultRatePolicy().
type PayRunInput struct {
	Records      []AttendanceRecord
	BasicSalary  decimal.Decimal
	Allowance    decimal.Decimal
	Holidays     HolidaySet
	Rates        RatePolicy
	InvalidDates InvalidDatePolicy
}

// PayRunResult is the complete output of one run. All slices are owned by
// the caller; the engine keeps no state between runs.
type PayRunResult struct {
	Daily       []DailyPayEntry
	Monthly     []MonthlyTotal
	Rates       WageRates
	Diagnostics Diagnostics
}

// =============================================================================
// DIAGNOSTICS - Non-fatal data problems, surfaced as metadata
// =============================================================================

// Diagnostics reports rows whose data degraded during the run instead of
// hiding them behind the parser's never-fails contract. Row indexes refer
// to positions in PayRunInput.Records.
type Diagnostics struct {
	// HoursFallbackRows lists rows where a non-empty duration value could
	// not be parsed and fell back to zero hours.
	HoursFallbackRows []int

	// InvalidDateRows lists rows whose date failed to parse.
	InvalidDateRows []int

	// ExcludedRows counts rows dropped under InvalidDateExcludeRow.
	ExcludedRows int
}

// Clean reports whether the run saw no degraded rows.
func (d Diagnostics) Clean() bool {
	return len(d.HoursFallbackRows) == 0 && len(d.InvalidDateRows) == 0 && d.ExcludedRows == 0
}
