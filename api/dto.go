/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the engine's
  internal types from the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AND HOURS:
  Money fields are serialized as fixed two-decimal strings; hour fields keep
  their natural decimal form ("8.5"). Clients never see floats.

SEE ALSO:
  - handlers.go: Uses these types
  - payroll/types.go: The engine types these mirror
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RecordDTO is one attendance row submitted as JSON. The duration fields are
// `any` on purpose: clients send numbers or strings, and both are legal.
type RecordDTO struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	Date              string `json:"date"`
	InTime            string `json:"in_time,omitempty"`
	OutTime           string `json:"out_time,omitempty"`
	TotalWorkingHours any    `json:"total_working_hours,omitempty"`
	ExtraWorkingTime  any    `json:"extra_working_time,omitempty"`
}

func (r RecordDTO) toRecord() payroll.AttendanceRecord {
	return payroll.AttendanceRecord{
		EmployeeID:        payroll.EmployeeID(r.EmployeeID),
		EmployeeName:      r.EmployeeName,
		Date:              payroll.ParseDate(r.Date),
		InTime:            r.InTime,
		OutTime:           r.OutTime,
		TotalWorkingHours: r.TotalWorkingHours,
		ExtraWorkingTime:  r.ExtraWorkingTime,
	}
}

// ComputeRequest is the JSON body of POST /api/payruns/compute.
type ComputeRequest struct {
	Records           []RecordDTO             `json:"records"`
	BasicSalary       float64                 `json:"basic_salary"`
	Allowance         float64                 `json:"allowance"`
	Holidays          []string                `json:"holidays,omitempty"`
	InvalidDatePolicy string                  `json:"invalid_date_policy,omitempty"` // "keep_row" | "exclude_row"
	RatePolicy        *factory.RatePolicyJSON `json:"rate_policy,omitempty"`
}

// LoadScenarioRequest selects a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// DailyEntryDTO is one row of the daily breakdown.
type DailyEntryDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"` // "" when the source date was invalid
	InTime       string `json:"in_time,omitempty"`
	OutTime      string `json:"out_time,omitempty"`
	TotalHours   string `json:"total_hours"`
	ExtraHours   string `json:"extra_hours"`
	DailyPay     string `json:"daily_pay"`
}

// MonthlyTotalDTO is one row of the monthly totals.
type MonthlyTotalDTO struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	TotalHours      string `json:"total_hours"`
	ExtraHours      string `json:"extra_hours"`
	DailyPaySum     string `json:"daily_pay_sum"`
	FixedMonthlyPay string `json:"fixed_monthly_pay"`
	FinalMonthlyPay string `json:"final_monthly_pay"`
}

// DiagnosticsDTO surfaces degraded rows to the caller.
type DiagnosticsDTO struct {
	HoursFallbackRows []int `json:"hours_fallback_rows,omitempty"`
	InvalidDateRows   []int `json:"invalid_date_rows,omitempty"`
	ExcludedRows      int   `json:"excluded_rows,omitempty"`
	Clean             bool  `json:"clean"`
}

// PayRunDTO is a full pay run: inputs, rates, and both result tables.
type PayRunDTO struct {
	ID          string            `json:"id,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
	BasicSalary string            `json:"basic_salary"`
	Allowance   string            `json:"allowance"`
	DailyWage   string            `json:"daily_wage"`
	HourlyWage  string            `json:"hourly_wage"`
	Holidays    []string          `json:"holidays,omitempty"`
	Daily       []DailyEntryDTO   `json:"daily_breakdown"`
	Monthly     []MonthlyTotalDTO `json:"monthly_totals"`
	Diagnostics DiagnosticsDTO    `json:"diagnostics"`
}

// RunSummaryDTO is the listing view of a stored run.
type RunSummaryDTO struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	BasicSalary string `json:"basic_salary"`
	Allowance   string `json:"allowance"`
	DailyWage   string `json:"daily_wage"`
	HourlyWage  string `json:"hourly_wage"`
	Employees   int    `json:"employees"`
	DailyRows   int    `json:"daily_rows"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorDTO is the JSON error envelope.
type ErrorDTO struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func dailyDTOs(daily []payroll.DailyPayEntry) []DailyEntryDTO {
	out := make([]DailyEntryDTO, 0, len(daily))
	for _, e := range daily {
		out = append(out, DailyEntryDTO{
			EmployeeID:   string(e.EmployeeID),
			EmployeeName: e.EmployeeName,
			Date:         e.Date.String(),
			InTime:       e.InTime,
			OutTime:      e.OutTime,
			TotalHours:   e.TotalHours.String(),
			ExtraHours:   e.ExtraHours.String(),
			DailyPay:     e.DailyPay.StringFixed(2),
		})
	}
	return out
}

func monthlyDTOs(monthly []payroll.MonthlyTotal) []MonthlyTotalDTO {
	out := make([]MonthlyTotalDTO, 0, len(monthly))
	for _, m := range monthly {
		out = append(out, MonthlyTotalDTO{
			EmployeeID:      string(m.EmployeeID),
			EmployeeName:    m.EmployeeName,
			TotalHours:      m.TotalHoursSum.String(),
			ExtraHours:      m.ExtraHoursSum.String(),
			DailyPaySum:     m.DailyPaySum.StringFixed(2),
			FixedMonthlyPay: m.FixedMonthlyPay.StringFixed(2),
			FinalMonthlyPay: m.FinalMonthlyPay.StringFixed(2),
		})
	}
	return out
}

func diagnosticsDTO(d payroll.Diagnostics) DiagnosticsDTO {
	return DiagnosticsDTO{
		HoursFallbackRows: d.HoursFallbackRows,
		InvalidDateRows:   d.InvalidDateRows,
		ExcludedRows:      d.ExcludedRows,
		Clean:             d.Clean(),
	}
}

func resultDTO(basic, allowance decimal.Decimal, holidays []string, result *payroll.PayRunResult) PayRunDTO {
	return PayRunDTO{
		BasicSalary: basic.StringFixed(2),
		Allowance:   allowance.StringFixed(2),
		DailyWage:   result.Rates.DailyWage.StringFixed(2),
		HourlyWage:  result.Rates.HourlyWage.StringFixed(2),
		Holidays:    holidays,
		Daily:       dailyDTOs(result.Daily),
		Monthly:     monthlyDTOs(result.Monthly),
		Diagnostics: diagnosticsDTO(result.Diagnostics),
	}
}

func storedRunDTO(run *sqlite.PayRun) PayRunDTO {
	return PayRunDTO{
		ID:          run.ID,
		CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339),
		BasicSalary: run.BasicSalary.StringFixed(2),
		Allowance:   run.Allowance.StringFixed(2),
		DailyWage:   run.Rates.DailyWage.StringFixed(2),
		HourlyWage:  run.Rates.HourlyWage.StringFixed(2),
		Holidays:    run.Holidays,
		Daily:       dailyDTOs(run.Daily),
		Monthly:     monthlyDTOs(run.Monthly),
		Diagnostics: diagnosticsDTO(run.Diagnostics),
	}
}
