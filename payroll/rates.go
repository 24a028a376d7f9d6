/*
rates.go - Rate policy and wage-rate derivation

PURPOSE:
  The conversion from a fixed monthly figure to daily and hourly wages
  encodes real policy: the annualization basis (12 months), the divisor for
  a day rate (365), and the nominal workday (8 hours). RatePolicy names
  those constants so the engine can be tested against alternatives instead
  of hiding them inline.

FORMULAS:
  dailyWage  = (basicSalary + allowance) * AnnualizationMonths / DaysPerYear
  hourlyWage = dailyWage / HoursPerDay

REST DAY:
  The weekly rest day (default Friday) and any declared holiday earn
  RestDayMultiplier (default 1.5) on normal hours. Extra hours are never
  multiplier-adjusted.

SEE ALSO:
  - engine.go: Applies these rates per row
  - factory/rates.go: JSON configuration of alternative policies
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE POLICY - Named constants behind the wage formulas
// =============================================================================

type RatePolicy struct {
	// AnnualizationMonths converts the monthly figure to an annual one.
	AnnualizationMonths int

	// DaysPerYear divides the annual figure into a day rate.
	DaysPerYear int

	// HoursPerDay divides the day rate into an hour rate.
	HoursPerDay int

	// RestDay is the designated weekly rest day.
	RestDay time.Weekday

	// RestDayMultiplier applies to normal hours on the rest day or a holiday.
	RestDayMultiplier decimal.Decimal
}

// DefaultRatePolicy returns the standard policy: 12-month annualization,
// 365-day year, 8-hour workday, Friday rest day at 1.5x.
func DefaultRatePolicy() RatePolicy {
	return RatePolicy{
		AnnualizationMonths: 12,
		DaysPerYear:         365,
		HoursPerDay:         8,
		RestDay:             time.Friday,
		RestDayMultiplier:   decimal.NewFromFloat(1.5),
	}
}

// IsZero reports whether the policy was left unset.
func (p RatePolicy) IsZero() bool {
	return p.AnnualizationMonths == 0 && p.DaysPerYear == 0 && p.HoursPerDay == 0 &&
		p.RestDay == 0 && p.RestDayMultiplier.IsZero()
}

// Validate rejects policies that would divide by zero or pay rest days
// below the normal rate.
func (p RatePolicy) Validate() error {
	one := decimal.NewFromInt(1)
	switch {
	case p.AnnualizationMonths <= 0:
		return &InvalidConfigurationError{Field: "annualization_months", Reason: "must be positive"}
	case p.DaysPerYear <= 0:
		return &InvalidConfigurationError{Field: "days_per_year", Reason: "must be positive"}
	case p.HoursPerDay <= 0:
		return &InvalidConfigurationError{Field: "hours_per_day", Reason: "must be positive"}
	case p.RestDayMultiplier.LessThan(one):
		return &InvalidConfigurationError{Field: "rest_day_multiplier", Reason: "must be at least 1"}
	}
	return nil
}

// RatesFor derives the wage rates for a fixed monthly figure.
// Rates are kept at full precision; rounding happens once per daily entry.
func (p RatePolicy) RatesFor(fixedMonthly decimal.Decimal) WageRates {
	daily := fixedMonthly.
		Mul(decimal.NewFromInt(int64(p.AnnualizationMonths))).
		Div(decimal.NewFromInt(int64(p.DaysPerYear)))
	return WageRates{
		DailyWage:  daily,
		HourlyWage: daily.Div(decimal.NewFromInt(int64(p.HoursPerDay))),
	}
}

// multiplierFor selects the pay multiplier for a VALID date. Callers handle
// invalid dates before reaching this point.
func (p RatePolicy) multiplierFor(d Date, holidays HolidaySet) decimal.Decimal {
	if d.Weekday() == p.RestDay || holidays.Contains(d) {
		return p.RestDayMultiplier
	}
	return decimal.NewFromInt(1)
}
