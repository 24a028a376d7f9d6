package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// 2025-03-10 is a Monday; 2025-03-14 is a Friday.
var (
	monday = payroll.NewDate(2025, time.March, 10)
	friday = payroll.NewDate(2025, time.March, 14)
)

func record(id, name string, date payroll.Date, total, extra any) payroll.AttendanceRecord {
	return payroll.AttendanceRecord{
		EmployeeID:        payroll.EmployeeID(id),
		EmployeeName:      name,
		Date:              date,
		TotalWorkingHours: total,
		ExtraWorkingTime:  extra,
	}
}

func compute(t *testing.T, in payroll.PayRunInput) *payroll.PayRunResult {
	t.Helper()
	result, err := payroll.Engine{}.Compute(in)
	require.NoError(t, err)
	return result
}

// =============================================================================
// WORKED EXAMPLE
// =============================================================================

func TestCompute_EndToEndExample(t *testing.T) {
	// GIVEN: basic 30000, allowance 5000
	// THEN: dailyWage = 35000*12/365 = 1150.68..., hourlyWage = 143.84...
	//       8 hours on a weekday  -> round(8*hourly, 2)     = 1150.68
	//       8 hours on the Friday -> round(8*hourly*1.5, 2) = 1726.03

	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", monday, 8, nil),
			record("E1", "Asha", friday, 8, nil),
		},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	assert.Equal(t, "1150.68", result.Rates.DailyWage.Round(2).String())
	assert.Equal(t, "143.84", result.Rates.HourlyWage.Round(2).String())

	require.Len(t, result.Daily, 2)
	assert.Equal(t, "1150.68", result.Daily[0].DailyPay.String())
	assert.Equal(t, "1726.03", result.Daily[1].DailyPay.String())
	assert.True(t, result.Diagnostics.Clean())
}

// =============================================================================
// MULTIPLIER RULES
// =============================================================================

func TestCompute_HolidayEarnsRestDayMultiplier(t *testing.T) {
	// GIVEN: A Tuesday declared as a paid holiday
	// WHEN: Computing an 8-hour day
	// THEN: Pay matches the Friday rate

	holiday := payroll.NewDate(2025, time.March, 11)
	result := compute(t, payroll.PayRunInput{
		Records:     []payroll.AttendanceRecord{record("E1", "Asha", holiday, 8, nil)},
		BasicSalary: money(30000),
		Allowance:   money(5000),
		Holidays:    payroll.NewHolidaySet(holiday),
	})

	require.Len(t, result.Daily, 1)
	assert.Equal(t, "1726.03", result.Daily[0].DailyPay.String())
}

func TestCompute_ExtraHoursNeverMultiplied(t *testing.T) {
	// GIVEN: 2 extra hours and no normal hours, on the rest day
	// THEN: Extra pay stays at the flat hourly rate

	result := compute(t, payroll.PayRunInput{
		Records:     []payroll.AttendanceRecord{record("E1", "Asha", friday, nil, 2)},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	require.Len(t, result.Daily, 1)
	want := decimal.NewFromInt(2).Mul(result.Rates.HourlyWage).Round(2)
	assert.True(t, result.Daily[0].DailyPay.Equal(want),
		"got %s want %s", result.Daily[0].DailyPay, want)
}

func TestCompute_ClockFormHoursParsed(t *testing.T) {
	// "8:30" on a weekday is 8.5 hours at the flat rate.
	result := compute(t, payroll.PayRunInput{
		Records:     []payroll.AttendanceRecord{record("E1", "Asha", monday, "8:30", "0:30")},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	require.Len(t, result.Daily, 1)
	assert.Equal(t, "8.5", result.Daily[0].TotalHours.String())
	assert.Equal(t, "0.5", result.Daily[0].ExtraHours.String())
	want := decimal.NewFromInt(9).Mul(result.Rates.HourlyWage).Round(2)
	assert.True(t, result.Daily[0].DailyPay.Equal(want))
}

func TestCompute_AlternativeRatePolicy(t *testing.T) {
	// GIVEN: A Sunday rest day, 2x multiplier, 360-day year, 6-hour workday
	// THEN: The engine honors the policy instead of the defaults

	sunday := payroll.NewDate(2025, time.March, 9)
	policy := payroll.RatePolicy{
		AnnualizationMonths: 12,
		DaysPerYear:         360,
		HoursPerDay:         6,
		RestDay:             time.Sunday,
		RestDayMultiplier:   decimal.NewFromInt(2),
	}

	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", sunday, 6, nil),
			record("E1", "Asha", friday, 6, nil),
		},
		BasicSalary: money(36000),
		Allowance:   money(0),
		Rates:       policy,
	})

	// daily = 36000*12/360 = 1200, hourly = 200
	assert.Equal(t, "1200", result.Rates.DailyWage.String())
	require.Len(t, result.Daily, 2)
	assert.Equal(t, "2400", result.Daily[0].DailyPay.String()) // Sunday at 2x
	assert.Equal(t, "1200", result.Daily[1].DailyPay.String()) // Friday is ordinary here
}

// =============================================================================
// INVALID DATES
// =============================================================================

func TestCompute_InvalidDate_KeepRow(t *testing.T) {
	// GIVEN: A record whose date cell did not parse, default policy
	// THEN: The row stays in the breakdown at a 1.0 multiplier and the
	//       run reports the row index as a diagnostic

	result := compute(t, payroll.PayRunInput{
		Records:     []payroll.AttendanceRecord{record("E1", "Asha", payroll.InvalidDate(), 8, nil)},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	require.Len(t, result.Daily, 1)
	assert.Equal(t, "1150.68", result.Daily[0].DailyPay.String())
	assert.Equal(t, []int{0}, result.Diagnostics.InvalidDateRows)
	assert.Equal(t, 0, result.Diagnostics.ExcludedRows)
}

func TestCompute_InvalidDate_ExcludeRow(t *testing.T) {
	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", payroll.InvalidDate(), 8, nil),
			record("E2", "Ben", monday, 8, nil),
		},
		BasicSalary:  money(30000),
		Allowance:    money(5000),
		InvalidDates: payroll.InvalidDateExcludeRow,
	})

	require.Len(t, result.Daily, 1)
	assert.Equal(t, payroll.EmployeeID("E2"), result.Daily[0].EmployeeID)
	assert.Equal(t, 1, result.Diagnostics.ExcludedRows)
	assert.Equal(t, []int{0}, result.Diagnostics.InvalidDateRows)

	// The excluded employee has no surviving rows, so no monthly total.
	require.Len(t, result.Monthly, 1)
	assert.Equal(t, payroll.EmployeeID("E2"), result.Monthly[0].EmployeeID)
}

func TestCompute_HoursFallbackReported(t *testing.T) {
	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", monday, "garbage", nil),
			record("E1", "Asha", friday, 8, nil),
		},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	assert.Equal(t, []int{0}, result.Diagnostics.HoursFallbackRows)
	assert.True(t, result.Daily[0].TotalHours.IsZero())
	assert.True(t, result.Daily[0].DailyPay.IsZero())
}

// =============================================================================
// GROUPING AND TOTALS
// =============================================================================

func TestCompute_GroupingCompleteness(t *testing.T) {
	// GIVEN: Interleaved rows for two employees
	// THEN: Exactly one monthly total per distinct (id, name) pair,
	//       sorted by employee ID

	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E2", "Ben", monday, 8, nil),
			record("E1", "Asha", monday, 8, 1),
			record("E2", "Ben", friday, 8, nil),
			record("E1", "Asha", friday, "8:30", nil),
		},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	require.Len(t, result.Monthly, 2)
	assert.Equal(t, payroll.EmployeeID("E1"), result.Monthly[0].EmployeeID)
	assert.Equal(t, payroll.EmployeeID("E2"), result.Monthly[1].EmployeeID)
	assert.Equal(t, "16.5", result.Monthly[0].TotalHoursSum.String())
	assert.Equal(t, "1", result.Monthly[0].ExtraHoursSum.String())
}

func TestCompute_FinalPayInvariant(t *testing.T) {
	// For every monthly total: final = fixed + dailyPaySum, exactly.
	result := compute(t, payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", monday, 8, 2),
			record("E1", "Asha", friday, "7:45", nil),
			record("E2", "Ben", friday, 8, "1:30"),
		},
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	fixed := money(35000)
	for _, total := range result.Monthly {
		assert.True(t, total.FixedMonthlyPay.Equal(fixed))
		assert.True(t, total.FinalMonthlyPay.Equal(total.FixedMonthlyPay.Add(total.DailyPaySum)),
			"final %s != fixed %s + daily %s", total.FinalMonthlyPay, total.FixedMonthlyPay, total.DailyPaySum)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	in := payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			record("E1", "Asha", monday, 8, 1),
			record("E2", "Ben", friday, "8:30", nil),
			record("E3", "Cam", payroll.InvalidDate(), "oops", nil),
		},
		BasicSalary: money(30000),
		Allowance:   money(5000),
		Holidays:    payroll.NewHolidaySet(payroll.NewDate(2025, time.March, 11)),
	}

	first := compute(t, in)
	second := compute(t, in)
	assert.Equal(t, first, second)
}

func TestCompute_EmptyInput(t *testing.T) {
	result := compute(t, payroll.PayRunInput{
		BasicSalary: money(30000),
		Allowance:   money(5000),
	})

	assert.Empty(t, result.Daily)
	assert.Empty(t, result.Monthly)
	assert.True(t, result.Diagnostics.Clean())
	assert.False(t, result.Rates.DailyWage.IsZero())
}

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

func TestCompute_RejectsNegativeSalary(t *testing.T) {
	_, err := payroll.Engine{}.Compute(payroll.PayRunInput{
		BasicSalary: money(-1),
		Allowance:   money(0),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrInvalidConfiguration)
	var cfgErr *payroll.InvalidConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "basic_salary", cfgErr.Field)
}

func TestCompute_RejectsNegativeAllowance(t *testing.T) {
	_, err := payroll.Engine{}.Compute(payroll.PayRunInput{
		BasicSalary: money(30000),
		Allowance:   money(-500),
	})

	assert.ErrorIs(t, err, payroll.ErrInvalidConfiguration)
}

func TestCompute_RejectsBrokenRatePolicy(t *testing.T) {
	_, err := payroll.Engine{}.Compute(payroll.PayRunInput{
		BasicSalary: money(30000),
		Allowance:   money(0),
		Rates: payroll.RatePolicy{
			AnnualizationMonths: 12,
			DaysPerYear:         0, // would divide by zero
			HoursPerDay:         8,
			RestDayMultiplier:   decimal.NewFromFloat(1.5),
		},
	})

	assert.ErrorIs(t, err, payroll.ErrInvalidConfiguration)
}

func TestCompute_RejectsSubUnitMultiplier(t *testing.T) {
	policy := payroll.DefaultRatePolicy()
	policy.RestDayMultiplier = decimal.NewFromFloat(0.5)

	_, err := payroll.Engine{}.Compute(payroll.PayRunInput{
		BasicSalary: money(30000),
		Allowance:   money(0),
		Rates:       policy,
	})

	assert.ErrorIs(t, err, payroll.ErrInvalidConfiguration)
}
