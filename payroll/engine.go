/*
engine.go - The wage computation: per-row pay and per-employee totals

PURPOSE:
  One call, one deterministic pass. The engine derives the run's wage rates,
  computes each record's daily pay independently, then groups daily entries
  by employee into monthly totals.

ALGORITHM:
  1. Validate salary inputs and rate policy (abort before any row on failure)
  2. Derive dailyWage / hourlyWage once, shared read-only across rows
  3. Per record:
       parse both duration columns (total, extra)
       pick multiplier: rest-day/holiday -> RestDayMultiplier, else 1;
         invalid date -> InvalidDatePolicy decides (keep at 1, or drop row)
       dailyPay = round(total*hourly*multiplier + extra*hourly, 2)
  4. Group by (EmployeeID, EmployeeName); sum hours and pay
  5. FixedMonthlyPay = basic + allowance; FinalMonthlyPay = sum + fixed

GUARANTEES:
  - Pure: identical input yields identical output, no hidden state
  - No cross-row dependency beyond the shared rates
  - Every distinct employee pair in the input appears exactly once in the
    monthly totals (minus rows dropped under InvalidDateExcludeRow)
  - Rounding happens once per row, never on rates or sums of rates

SEE ALSO:
  - hours.go: Duration parsing contract
  - rates.go: Rate derivation and multiplier selection
*/
package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Engine computes pay runs. Stateless; the zero value is ready to use.
type Engine struct{}

// Compute runs the wage computation over the full input table.
// Configuration errors abort before any row is processed; data problems
// inside rows degrade per the parser contract and show up in Diagnostics.
func (e Engine) Compute(in PayRunInput) (*PayRunResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	policy := in.Rates
	if policy.IsZero() {
		policy = DefaultRatePolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	fixedMonthly := in.BasicSalary.Add(in.Allowance)
	rates := policy.RatesFor(fixedMonthly)

	result := &PayRunResult{
		Rates: rates,
		Daily: make([]DailyPayEntry, 0, len(in.Records)),
	}

	for i, rec := range in.Records {
		totalHours, totalFell := parseHours(rec.TotalWorkingHours)
		extraHours, extraFell := parseHours(rec.ExtraWorkingTime)
		if totalFell || extraFell {
			result.Diagnostics.HoursFallbackRows = append(result.Diagnostics.HoursFallbackRows, i)
		}

		multiplier := decimal.NewFromInt(1)
		if rec.Date.Valid() {
			multiplier = policy.multiplierFor(rec.Date, in.Holidays)
		} else {
			result.Diagnostics.InvalidDateRows = append(result.Diagnostics.InvalidDateRows, i)
			if in.InvalidDates == InvalidDateExcludeRow {
				result.Diagnostics.ExcludedRows++
				continue
			}
		}

		normalPay := totalHours.Mul(rates.HourlyWage).Mul(multiplier)
		extraPay := extraHours.Mul(rates.HourlyWage)

		result.Daily = append(result.Daily, DailyPayEntry{
			EmployeeID:   rec.EmployeeID,
			EmployeeName: rec.EmployeeName,
			Date:         rec.Date,
			InTime:       rec.InTime,
			OutTime:      rec.OutTime,
			TotalHours:   totalHours,
			ExtraHours:   extraHours,
			DailyPay:     normalPay.Add(extraPay).Round(2),
		})
	}

	result.Monthly = groupMonthly(result.Daily, fixedMonthly)
	return result, nil
}

func validateInput(in PayRunInput) error {
	if in.BasicSalary.IsNegative() {
		return &InvalidConfigurationError{Field: "basic_salary", Value: in.BasicSalary.String(), Reason: "must not be negative"}
	}
	if in.Allowance.IsNegative() {
		return &InvalidConfigurationError{Field: "allowance", Value: in.Allowance.String(), Reason: "must not be negative"}
	}
	return nil
}

// =============================================================================
// GROUPING - Daily entries into monthly totals
// =============================================================================

type employeeKey struct {
	ID   EmployeeID
	Name string
}

func groupMonthly(daily []DailyPayEntry, fixedMonthly decimal.Decimal) []MonthlyTotal {
	groups := make(map[employeeKey]*MonthlyTotal)
	keys := make([]employeeKey, 0)

	for _, entry := range daily {
		k := employeeKey{ID: entry.EmployeeID, Name: entry.EmployeeName}
		total, ok := groups[k]
		if !ok {
			total = &MonthlyTotal{EmployeeID: k.ID, EmployeeName: k.Name}
			groups[k] = total
			keys = append(keys, k)
		}
		total.TotalHoursSum = total.TotalHoursSum.Add(entry.TotalHours)
		total.ExtraHoursSum = total.ExtraHoursSum.Add(entry.ExtraHours)
		total.DailyPaySum = total.DailyPaySum.Add(entry.DailyPay)
	}

	// Sorted by employee ID (then name) so output order is deterministic.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ID != keys[j].ID {
			return keys[i].ID < keys[j].ID
		}
		return keys[i].Name < keys[j].Name
	})

	out := make([]MonthlyTotal, 0, len(keys))
	for _, k := range keys {
		total := groups[k]
		total.FixedMonthlyPay = fixedMonthly
		total.FinalMonthlyPay = total.DailyPaySum.Add(fixedMonthly)
		out = append(out, *total)
	}
	return out
}
